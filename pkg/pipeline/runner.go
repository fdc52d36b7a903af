package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/cache"
	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/observability"
	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/resolve"
	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/rule"
)

// Runner executes resolution runs over universes, with caching. Both CLI and
// API use it to avoid duplicating caching and logging logic.
//
// The Runner is stateless except for the cache and logger; it stores no run
// results. Multiple goroutines can safely share one Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Options control one resolution run.
type Options struct {
	// Focus is the rule to compute the order for.
	Focus string

	// DisableRecovery turns off the sanitizer's provider-recovery
	// heuristic.
	DisableRecovery bool

	// Refresh bypasses the cache read, forcing recomputation. The fresh
	// result is still written back.
	Refresh bool
}

// RunResult is one completed resolution run, with cache provenance.
type RunResult struct {
	*resolve.Result

	// UniverseHash is the fingerprint of the resolved universe, usable as
	// an external cache handle.
	UniverseHash string `json:"universe_hash"`

	// CacheHit reports whether the result was served from cache.
	CacheHit bool `json:"cache_hit"`

	// Duration is the wall time of the run, including cache lookups.
	Duration time.Duration `json:"duration"`
}

// Resolve computes the leaf-to-root order for one focus rule of the
// universe. Results are cached by universe fingerprint, focus, and resolver
// options; a cached result is byte-identical to a fresh one apart from its
// run ID.
//
// The only error class is an invariant violation for this focus; every other
// input anomaly is normalized and reported through the result's events.
func (r *Runner) Resolve(ctx context.Context, u *rule.Universe, opts Options) (*RunResult, error) {
	start := time.Now()
	hash := u.Fingerprint()
	logger := r.Logger.With("universe", u.Name, "focus", opts.Focus)

	observability.Resolve().OnResolveStart(ctx, u.Name, opts.Focus)

	key := r.Keyer.OrderKey(hash, opts.Focus, cache.OrderKeyOpts{
		DisableRecovery: opts.DisableRecovery,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached resolve.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "order")
				logger.Debug("order served from cache", "rules", len(cached.Order))
				res := &RunResult{
					Result:       &cached,
					UniverseHash: hash,
					CacheHit:     true,
					Duration:     time.Since(start),
				}
				observability.Resolve().OnResolveComplete(ctx, u.Name, opts.Focus,
					len(cached.Order), len(cached.Warnings()), res.Duration, nil)
				return res, nil
			}
			// Corrupt entry, recompute below.
			_ = r.Cache.Delete(ctx, key)
		}
		observability.Cache().OnCacheMiss(ctx, "order")
	}

	resolver := resolve.NewResolver(opts.DisableRecovery)
	result, err := resolver.Resolve(u.Relation(), u.Reverse(), opts.Focus)
	if err != nil {
		observability.Resolve().OnResolveComplete(ctx, u.Name, opts.Focus,
			0, 0, time.Since(start), err)
		return nil, err
	}
	r.logEvents(logger, result.Events)

	if data, err := json.Marshal(result); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLOrder); err == nil {
			observability.Cache().OnCacheSet(ctx, "order", len(data))
		}
	}

	res := &RunResult{
		Result:       result,
		UniverseHash: hash,
		Duration:     time.Since(start),
	}
	logger.Info("resolved order",
		"rules", len(result.Order),
		"cyclic", result.Cyclic,
		"duration", res.Duration)
	observability.Resolve().OnResolveComplete(ctx, u.Name, opts.Focus,
		len(result.Order), len(result.Warnings()), res.Duration, nil)
	return res, nil
}

// BatchResult is the outcome of resolving every rule of a universe.
type BatchResult struct {
	// Universe is the name of the resolved universe.
	Universe string `json:"universe,omitempty"`

	// Orders holds the successful runs, in rule-name order.
	Orders []*RunResult `json:"orders"`

	// Failed maps focus rules to their resolution errors. A failed focus
	// never aborts the remaining focuses.
	Failed map[string]error `json:"-"`
}

// ResolveAll resolves every declared rule of the universe as a focus, in
// sorted rule order. Runs are sequential; each operates on its own defensive
// copy of the relation, so a batch is equivalent to independent single runs.
func (r *Runner) ResolveAll(ctx context.Context, u *rule.Universe, opts Options) (*BatchResult, error) {
	batch := &BatchResult{
		Universe: u.Name,
		Failed:   make(map[string]error),
	}

	for _, focus := range u.RuleNames() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		runOpts := opts
		runOpts.Focus = focus
		res, err := r.Resolve(ctx, u, runOpts)
		if err != nil {
			r.Logger.Error("focus failed, continuing batch",
				"universe", u.Name, "focus", focus, "err", err)
			batch.Failed[focus] = err
			continue
		}
		batch.Orders = append(batch.Orders, res)
	}

	return batch, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// logEvents routes resolution diagnostics to the logger: warnings for
// degraded outcomes, debug for the rest.
func (r *Runner) logEvents(logger *log.Logger, events []resolve.Event) {
	for _, e := range events {
		if e.Warning() {
			logger.Warn(e.Msg, "kind", e.Kind)
		} else {
			logger.Debug(e.Msg, "kind", e.Kind)
		}
	}
}
