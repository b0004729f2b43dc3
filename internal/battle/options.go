package battle

import (
	"log/slog"
	"math/rand"

	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/skirmish/internal/combat"
	"github.com/samdwyer/skirmish/internal/gamedata"
)

// Option configures a Battle.
type Option func(*Battle)

// WithRand sets the random source used by the enemy AI and random-enemy
// targeting. Use a seeded source for reproducible battles.
func WithRand(rng combat.Rand) Option {
	return func(b *Battle) { b.rng = rng }
}

// WithSeed is shorthand for WithRand with a seeded math/rand source.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithLogger sets the structured logger. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Battle) { b.logger = logger }
}

// WithTracer sets the tracer used for battle spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(b *Battle) { b.tracer = tracer }
}

// WithObserver registers an observer. Observers run in registration order.
func WithObserver(o Observer) Option {
	return func(b *Battle) { b.observers = append(b.observers, o) }
}

// WithDrops sets the item IDs granted on victory.
func WithDrops(itemIDs []string) Option {
	return func(b *Battle) { b.drops = append([]string(nil), itemIDs...) }
}

// WithItems sets the item table used by UseItem.
func WithItems(items *gamedata.ItemRegistry) Option {
	return func(b *Battle) { b.items = items }
}
