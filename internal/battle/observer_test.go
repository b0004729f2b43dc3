package battle

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/gamedata"
)

func TestLogObserverWritesStructuredLines(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	b := newBattle(t,
		[]*entity.Unit{unit("Hero", entity.SidePlayer, 50, 0, 100, 0, 0)},
		[]*entity.Unit{unit("Rat", entity.SideEnemy, 5, 0, 1, 0, 0)},
		WithObserver(LogObserver(logger)),
	)
	start(t, b)
	if _, err := b.Submit(context.Background(), BasicAttack{Unit: b.Players()[0], Target: b.Enemies()[0]}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"event=battle_started",
		"event=damage_dealt",
		"target=Rat",
		"event=unit_defeated",
		"result=victory",
		"experience=50",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Log output missing %q:\n%s", want, out)
		}
	}
}

func TestSnapshot(t *testing.T) {
	b := newBattle(t,
		[]*entity.Unit{unit("Hero", entity.SidePlayer, 50, 10, 10, 3, 0)},
		[]*entity.Unit{unit("Rat", entity.SideEnemy, 30, 0, 1, 0, 0)},
	)
	start(t, b)

	s := b.Snapshot()
	if s.Phase != PhasePlayer || s.Round != 1 || s.ID != b.ID() {
		t.Errorf("Unexpected snapshot header: %+v", s)
	}
	if s.CurrentID != b.Players()[0].ID {
		t.Error("Snapshot should name the current unit")
	}
	if len(s.Players) != 1 || s.Players[0].HP != 50 || s.Players[0].Defense != 3 || !s.Players[0].Alive {
		t.Errorf("Unexpected player view: %+v", s.Players)
	}
	if s.Outcome != nil {
		t.Error("Outcome should be nil while the battle runs")
	}

	b.Enemies()[0].ApplyDamage(5, gamedata.DamageTrue)
	if s.Enemies[0].HP != 30 {
		t.Error("Snapshots must not change after they are taken")
	}
}
