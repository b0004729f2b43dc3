package storage

import (
	"time"

	"gorm.io/gorm"

	"github.com/samdwyer/skirmish/internal/battle"
)

// ExperiencePerLevel is the meta experience needed for each profile level.
const ExperiencePerLevel = 100

// BattleReport is the stored summary of one finished battle.
type BattleReport struct {
	gorm.Model
	BattleID   string   `gorm:"uniqueIndex;size:36"`
	RunID      string   `gorm:"index;size:64"`
	Encounter  string   `gorm:"size:64"`
	Result     string   `gorm:"size:16"`
	Seed       int64
	Turns      int
	Rounds     int
	Experience int
	Gold       int
	Items      []string `gorm:"serializer:json"`
	Party      []string `gorm:"serializer:json"` // Template IDs of the player roster
}

func (BattleReport) TableName() string { return "battle_reports" }

// NewReport builds a report from a finished battle's outcome.
func NewReport(battleID, runID, encounter string, seed int64, party []string, outcome battle.Outcome) *BattleReport {
	return &BattleReport{
		BattleID:   battleID,
		RunID:      runID,
		Encounter:  encounter,
		Result:     outcome.Result.String(),
		Seed:       seed,
		Turns:      outcome.Turns,
		Rounds:     outcome.Rounds,
		Experience: outcome.Rewards.Experience,
		Gold:       outcome.Rewards.Gold,
		Items:      append([]string(nil), outcome.Rewards.Items...),
		Party:      append([]string(nil), party...),
	}
}

// Run is the progress of a profile: the current run plus the meta
// progression that survives defeat.
type Run struct {
	ID string `gorm:"primaryKey;size:64"`

	// Current run, reset on defeat.
	Floor int
	Gold  int

	// Meta progression.
	Level           int
	SkillPoints     int
	MetaExperience  int
	TotalGoldEarned int
	BestFloor       int
	TotalRuns       int
	Victories       int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Run) TableName() string { return "run_progress" }

// NewRun returns a fresh run on floor 1.
func NewRun(id string) *Run {
	return &Run{ID: id, Floor: 1, Level: 1}
}

// Apply folds a battle outcome into the run. It reports whether anything
// changed; escaping leaves the run untouched.
func (r *Run) Apply(outcome battle.Outcome) bool {
	switch outcome.Result {
	case battle.ResultVictory:
		r.Gold += outcome.Rewards.Gold
		r.TotalGoldEarned += outcome.Rewards.Gold
		r.addExperience(outcome.Rewards.Experience)
		r.Victories++
		r.Floor++
		if r.Floor > r.BestFloor {
			r.BestFloor = r.Floor
		}
		return true
	case battle.ResultDefeat:
		r.TotalRuns++
		r.Floor = 1
		r.Gold = 0
		return true
	default:
		return false
	}
}

func (r *Run) addExperience(amount int) {
	r.MetaExperience += amount
	level := max(1, r.MetaExperience/ExperiencePerLevel+1)
	if level > r.Level {
		r.SkillPoints += level - r.Level
		r.Level = level
	}
}
