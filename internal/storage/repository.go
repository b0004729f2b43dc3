package storage

import (
	"context"

	"github.com/samdwyer/skirmish/internal/battle"
)

// Repository stores what a battle leaves behind.
type Repository interface {
	SaveReport(ctx context.Context, report *BattleReport) error
	// ListReports returns the most recent reports first.
	ListReports(ctx context.Context, limit int) ([]BattleReport, error)
	// GetRun returns the stored run, or a fresh one if none exists yet.
	GetRun(ctx context.Context, runID string) (*Run, error)
	// ApplyOutcome folds an outcome into the run and returns the result.
	ApplyOutcome(ctx context.Context, runID string, outcome battle.Outcome) (*Run, error)
}
