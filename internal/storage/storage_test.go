package storage

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/samdwyer/skirmish/internal/battle"
)

func openTestRepo(t *testing.T) Repository {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := OpenAndMigrate(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("OpenAndMigrate failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { Close(db) })
	return NewSQLiteRepository(db)
}

func victory(exp, gold int, items ...string) battle.Outcome {
	return battle.Outcome{
		Result:  battle.ResultVictory,
		Rewards: battle.Rewards{Experience: exp, Gold: gold, Items: items},
		Turns:   6,
		Rounds:  2,
	}
}

func TestRunApply(t *testing.T) {
	tests := []struct {
		name      string
		outcomes  []battle.Outcome
		floor     int
		gold      int
		bestFloor int
		totalRuns int
		metaExp   int
		level     int
	}{
		{"fresh", nil, 1, 0, 0, 0, 0, 1},
		{"one victory", []battle.Outcome{victory(100, 50)}, 2, 50, 2, 0, 100, 2},
		{"two victories", []battle.Outcome{victory(100, 50), victory(50, 25)}, 3, 75, 3, 0, 150, 2},
		{"escape", []battle.Outcome{{Result: battle.ResultEscaped}}, 1, 0, 0, 0, 0, 1},
		{
			"defeat keeps meta progression",
			[]battle.Outcome{victory(150, 75), victory(150, 75), {Result: battle.ResultDefeat}},
			1, 0, 3, 1, 300, 4,
		},
	}

	for _, tt := range tests {
		run := NewRun("p1")
		for _, o := range tt.outcomes {
			run.Apply(o)
		}
		if run.Floor != tt.floor || run.Gold != tt.gold || run.BestFloor != tt.bestFloor {
			t.Errorf("%s: floor %d gold %d best %d, want %d %d %d",
				tt.name, run.Floor, run.Gold, run.BestFloor, tt.floor, tt.gold, tt.bestFloor)
		}
		if run.TotalRuns != tt.totalRuns || run.MetaExperience != tt.metaExp || run.Level != tt.level {
			t.Errorf("%s: runs %d exp %d level %d, want %d %d %d",
				tt.name, run.TotalRuns, run.MetaExperience, run.Level, tt.totalRuns, tt.metaExp, tt.level)
		}
		if run.SkillPoints != run.Level-1 {
			t.Errorf("%s: expected %d skill points, got %d", tt.name, run.Level-1, run.SkillPoints)
		}
	}
}

func TestRunApplyReportsChange(t *testing.T) {
	run := NewRun("p1")
	if run.Apply(battle.Outcome{Result: battle.ResultEscaped}) {
		t.Error("Escaping should not change the run")
	}
	if !run.Apply(battle.Outcome{Result: battle.ResultDefeat}) {
		t.Error("Defeat should change the run")
	}
}

func TestGetRunDefaultsToFresh(t *testing.T) {
	repo := openTestRepo(t)

	run, err := repo.GetRun(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if run.ID != "nobody" || run.Floor != 1 || run.Gold != 0 {
		t.Errorf("Expected a fresh run, got %+v", run)
	}
}

func TestApplyOutcomePersists(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	if _, err := repo.ApplyOutcome(ctx, "p1", victory(100, 50)); err != nil {
		t.Fatalf("ApplyOutcome failed: %v", err)
	}
	run, err := repo.ApplyOutcome(ctx, "p1", victory(100, 50))
	if err != nil {
		t.Fatalf("ApplyOutcome failed: %v", err)
	}
	if run.Floor != 3 || run.Gold != 100 || run.BestFloor != 3 {
		t.Errorf("Unexpected run after two victories: %+v", run)
	}

	stored, err := repo.GetRun(ctx, "p1")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if stored.Floor != 3 || stored.MetaExperience != 200 || stored.Victories != 2 {
		t.Errorf("Stored run does not match: %+v", stored)
	}

	if _, err := repo.ApplyOutcome(ctx, "p1", battle.Outcome{Result: battle.ResultEscaped}); err != nil {
		t.Fatalf("ApplyOutcome(escaped) failed: %v", err)
	}
	run, err = repo.ApplyOutcome(ctx, "p1", battle.Outcome{Result: battle.ResultDefeat})
	if err != nil {
		t.Fatalf("ApplyOutcome(defeat) failed: %v", err)
	}
	if run.Floor != 1 || run.Gold != 0 || run.TotalRuns != 1 || run.BestFloor != 3 {
		t.Errorf("Defeat should reset the run but keep meta progression: %+v", run)
	}

	other, err := repo.GetRun(ctx, "p2")
	if err != nil || other.Floor != 1 {
		t.Errorf("Runs should be independent, got %+v, %v", other, err)
	}
}

func TestReports(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	outcomes := []battle.Outcome{
		victory(100, 50, "health_potion"),
		{Result: battle.ResultDefeat, Turns: 9, Rounds: 3},
		{Result: battle.ResultEscaped, Turns: 1, Rounds: 1},
	}
	for i, o := range outcomes {
		report := NewReport(fmt.Sprintf("battle-%d", i), "p1", "goblin_pack", int64(i), []string{"warrior", "mage"}, o)
		if err := repo.SaveReport(ctx, report); err != nil {
			t.Fatalf("SaveReport %d failed: %v", i, err)
		}
	}

	reports, err := repo.ListReports(ctx, 2)
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("Expected 2 reports, got %d", len(reports))
	}
	if reports[0].BattleID != "battle-2" || reports[0].Result != "escaped" {
		t.Errorf("Expected newest report first, got %s (%s)", reports[0].BattleID, reports[0].Result)
	}

	all, err := repo.ListReports(ctx, 0)
	if err != nil || len(all) != 3 {
		t.Fatalf("Expected 3 reports with the default limit, got %d, %v", len(all), err)
	}
	first := all[2]
	if first.Experience != 100 || first.Gold != 50 {
		t.Errorf("Rewards not stored: %+v", first)
	}
	if len(first.Items) != 1 || first.Items[0] != "health_potion" {
		t.Errorf("Items not round-tripped: %v", first.Items)
	}
	if len(first.Party) != 2 || first.Party[1] != "mage" {
		t.Errorf("Party not round-tripped: %v", first.Party)
	}

	dup := NewReport("battle-0", "p1", "goblin_pack", 0, nil, outcomes[0])
	if err := repo.SaveReport(ctx, dup); err == nil {
		t.Error("Saving a duplicate battle id should fail")
	}
}
