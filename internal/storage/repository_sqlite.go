package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/samdwyer/skirmish/internal/battle"
)

type sqliteRepository struct {
	db *gorm.DB
}

// NewSQLiteRepository wraps an opened database.
func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) SaveReport(ctx context.Context, report *BattleReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *sqliteRepository) ListReports(ctx context.Context, limit int) ([]BattleReport, error) {
	if limit <= 0 {
		limit = 10
	}
	var reports []BattleReport
	if err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *sqliteRepository) GetRun(ctx context.Context, runID string) (*Run, error) {
	var run Run
	if err := r.db.WithContext(ctx).Where("id = ?", runID).First(&run).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewRun(runID), nil
		}
		return nil, err
	}
	return &run, nil
}

func (r *sqliteRepository) ApplyOutcome(ctx context.Context, runID string, outcome battle.Outcome) (*Run, error) {
	var result *Run
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var run Run
		err := tx.Where("id = ?", runID).First(&run).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			fresh := NewRun(runID)
			fresh.Apply(outcome)
			result = fresh
			return tx.Create(fresh).Error
		case err != nil:
			return err
		}

		result = &run
		if !run.Apply(outcome) {
			return nil
		}
		return tx.Save(&run).Error
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
