package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/skirmish/internal/battle"
	"github.com/samdwyer/skirmish/internal/config"
	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/gamedata"
	"github.com/samdwyer/skirmish/internal/storage"
	"github.com/samdwyer/skirmish/internal/telemetry"
	"github.com/samdwyer/skirmish/internal/ui"
)

// MaxAutoActions bounds a headless battle.
const MaxAutoActions = 1000

// ErrStalled is returned when a headless battle does not finish.
var ErrStalled = errors.New("battle did not finish")

// Game holds one battle session.
type Game struct {
	cfg     config.Config
	catalog *gamedata.Catalog
	repo    storage.Repository // May be nil
	logger  *slog.Logger
	tracer  trace.Tracer

	seed      int64
	encounter *gamedata.EncounterDef
	battle    *battle.Battle
	log       []string
	run       *storage.Run
	recorded  bool

	screen   *ui.Screen
	renderer *ui.Renderer
	state    State
	menu     menu
	running  bool
}

// New spawns the configured party and encounter and prepares the battle.
// A nil logger discards and a nil tracer uses the global provider.
func New(cfg config.Config, catalog *gamedata.Catalog, repo storage.Repository, logger *slog.Logger, tracer trace.Tracer) (*Game, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if tracer == nil {
		tracer = telemetry.Tracer("game")
	}

	seed := cfg.ResolveSeed(time.Now)
	rng := rand.New(rand.NewSource(seed))

	var encounter *gamedata.EncounterDef
	if cfg.Encounter != "" {
		def, err := catalog.Encounter(cfg.Encounter)
		if err != nil {
			return nil, err
		}
		encounter = def
	} else if encounter = catalog.Encounters.SpawnRandom(rng); encounter == nil {
		return nil, errors.New("no encounters available")
	}

	players, err := entity.SpawnParty(catalog, cfg.Party)
	if err != nil {
		return nil, err
	}
	enemies, drops, err := entity.SpawnEncounter(catalog, encounter.ID)
	if err != nil {
		return nil, err
	}

	b, err := battle.New(players, enemies,
		battle.WithRand(rng),
		battle.WithLogger(logger),
		battle.WithTracer(tracer),
		battle.WithItems(catalog.Items),
		battle.WithDrops(drops),
		battle.WithObserver(battle.LogObserver(logger)),
	)
	if err != nil {
		return nil, fmt.Errorf("creating battle: %w", err)
	}

	return &Game{
		cfg:       cfg,
		catalog:   catalog,
		repo:      repo,
		logger:    logger.With("battle_id", b.ID(), "encounter", encounter.ID, "seed", seed),
		tracer:    tracer,
		seed:      seed,
		encounter: encounter,
		battle:    b,
		state:     StateCommand,
	}, nil
}

// Battle returns the session's battle.
func (g *Game) Battle() *battle.Battle { return g.battle }

// Encounter returns the encounter being fought.
func (g *Game) Encounter() *gamedata.EncounterDef { return g.encounter }

// Seed returns the resolved random seed.
func (g *Game) Seed() int64 { return g.seed }

// Log returns the battle log messages so far.
func (g *Game) Log() []string { return append([]string(nil), g.log...) }

// Progress returns the run progress after the outcome was recorded, or nil.
func (g *Game) Progress() *storage.Run { return g.run }

// RunAuto plays the whole battle with AutoPlayer.
func (g *Game) RunAuto(ctx context.Context) (battle.Outcome, error) {
	ctx, span := g.tracer.Start(ctx, "game.auto")
	defer span.End()

	if err := g.start(ctx); err != nil {
		span.SetAttributes(attribute.Bool("failed", true))
		return battle.Outcome{}, err
	}

	var player AutoPlayer
	for i := 0; i < MaxAutoActions && !g.battle.Phase().IsTerminal(); i++ {
		action := player.Choose(g.battle)
		if action == nil {
			break
		}
		events, err := g.battle.Submit(ctx, action)
		g.append(events)
		if err != nil {
			g.logger.Debug("auto action rejected", "error", err)
		}
	}

	outcome, ok := g.battle.Outcome()
	if !ok {
		span.SetAttributes(attribute.Bool("failed", true))
		return battle.Outcome{}, ErrStalled
	}
	span.SetAttributes(
		attribute.String("outcome", outcome.Result.String()),
		attribute.Int("turns_taken", outcome.Turns),
	)
	if err := g.record(ctx, outcome); err != nil {
		return outcome, err
	}
	return outcome, nil
}

// Play runs the interactive terminal loop until the player quits.
func (g *Game) Play(ctx context.Context) error {
	screen, err := ui.NewScreen()
	if err != nil {
		return err
	}
	g.screen = screen
	g.renderer = ui.NewRenderer(screen, g.catalog)
	defer g.Close()

	if err := g.start(ctx); err != nil {
		return err
	}

	g.running = true
	for g.running {
		g.renderer.Render(g.view())
		g.handleInput(ctx)
	}
	return nil
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
		g.screen = nil
	}
}

func (g *Game) start(ctx context.Context) error {
	events, err := g.battle.Start(ctx)
	if err != nil {
		return err
	}
	g.append(events)
	return nil
}

// afterSubmit records the events of an engine call and reacts to the end of
// the battle.
func (g *Game) afterSubmit(ctx context.Context, events []battle.Event) {
	g.append(events)
	g.state = StateCommand
	g.menu = menu{}

	outcome, ok := g.battle.Outcome()
	if !ok {
		return
	}
	g.state = StateOver
	if err := g.record(ctx, outcome); err != nil {
		g.logger.Error("recording outcome failed", "error", err)
		g.log = append(g.log, "Could not save progress: "+err.Error())
	}
}

// record stores the battle report and applies the outcome to run progress.
// It runs at most once per session.
func (g *Game) record(ctx context.Context, outcome battle.Outcome) error {
	if g.repo == nil || g.recorded {
		return nil
	}
	g.recorded = true

	ctx, span := g.tracer.Start(ctx, "game.record")
	defer span.End()

	report := storage.NewReport(g.battle.ID(), g.cfg.Profile, g.encounter.ID, g.seed, g.cfg.Party, outcome)
	if err := g.repo.SaveReport(ctx, report); err != nil {
		span.SetAttributes(attribute.Bool("failed", true))
		return fmt.Errorf("saving report: %w", err)
	}

	run, err := g.repo.ApplyOutcome(ctx, g.cfg.Profile, outcome)
	if err != nil {
		span.SetAttributes(attribute.Bool("failed", true))
		return fmt.Errorf("applying outcome: %w", err)
	}
	g.run = run
	span.SetAttributes(
		attribute.Int("run.floor", run.Floor),
		attribute.Int("run.gold", run.Gold),
	)
	g.logger.Info("outcome recorded", "result", outcome.Result.String(), "floor", run.Floor, "gold", run.Gold)
	g.log = append(g.log, fmt.Sprintf("Floor %d  Gold %d  Best floor %d", run.Floor, run.Gold, run.BestFloor))
	return nil
}

func (g *Game) append(events []battle.Event) {
	for _, ev := range events {
		if msg := Describe(ev); msg != "" {
			g.log = append(g.log, msg)
		}
	}
}
