// Package engine wires the roster store, availability resolver, capability
// matcher, conflict detector, cost calculator and reassignment planner
// into the interface exposed to coordinators. All mutating operations run
// behind a single writer lock, and the post-write conflict sweep executes
// inside the same critical section as the mutation it follows.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/skyopshq/skyops/core/audit"
	"github.com/skyopshq/skyops/core/conflict"
	"github.com/skyopshq/skyops/core/identity"
	"github.com/skyopshq/skyops/core/logger"
	"github.com/skyopshq/skyops/core/match"
	"github.com/skyopshq/skyops/core/metrics"
	"github.com/skyopshq/skyops/core/planner"
	"github.com/skyopshq/skyops/core/roster"
	"github.com/skyopshq/skyops/internal/eventbus"
)

// SyncChange describes one roster mutation for the external store layer.
type SyncChange struct {
	Entity  string `json:"entity"`
	ID      string `json:"id"`
	Action  string `json:"action"`
	Payload any    `json:"payload,omitempty"`
}

// SyncNotifier pushes change notifications to the external spreadsheet
// sync layer. Notification is one-way: the engine never blocks on sync
// completion.
type SyncNotifier interface {
	NotifyChange(ctx context.Context, change SyncChange) error
	Close() error
}

// NopNotifier drops all notifications.
type NopNotifier struct{}

func (NopNotifier) NotifyChange(context.Context, SyncChange) error { return nil }
func (NopNotifier) Close() error                                   { return nil }

// Options carries the engine collaborators. Nil fields get safe defaults.
type Options struct {
	Matcher *match.Matcher
	Logger  logger.Logger
	Metrics metrics.MetricsSink
	Bus     eventbus.EventBus
	Audit   audit.Store
	Sync    SyncNotifier
	// Now overrides the evaluation clock; tests pin it.
	Now func() time.Time
}

// Engine is the matching and conflict engine. One logical owner per
// session; safe for concurrent use through its internal locking.
type Engine struct {
	store    *roster.Store
	ids      *identity.Normalizer
	matcher  match.Matcher
	detector conflict.Detector
	planner  planner.Planner
	log      logger.Logger
	metrics  metrics.MetricsSink
	bus      eventbus.EventBus
	audit    audit.Store
	sync     SyncNotifier
	now      func() time.Time
	// mu serializes mutating operations so the automatic post-write
	// conflict pass runs in the same critical section as the mutation.
	mu sync.Mutex
}

// New creates an engine around a store and identity normalizer.
func New(store *roster.Store, ids *identity.Normalizer, opts Options) (*Engine, error) {
	if store == nil || ids == nil {
		return nil, fmt.Errorf("engine: nil store or normalizer")
	}
	e := &Engine{
		store:    store,
		ids:      ids,
		detector: conflict.New(),
		log:      opts.Logger,
		metrics:  opts.Metrics,
		bus:      opts.Bus,
		audit:    opts.Audit,
		sync:     opts.Sync,
		now:      opts.Now,
	}
	if opts.Matcher != nil {
		e.matcher = *opts.Matcher
	} else {
		e.matcher = match.New()
	}
	e.planner = planner.New(e.matcher)
	if e.log == nil {
		e.log = logger.Nop{}
	}
	if e.metrics == nil {
		e.metrics = metrics.NopSink{}
	}
	if e.sync == nil {
		e.sync = NopNotifier{}
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e, nil
}

// Close releases the engine's collaborators.
func (e *Engine) Close() error {
	if e.bus != nil {
		if n := e.bus.Dropped(); n > 0 {
			e.log.Warnf("event bus dropped %d events", n)
		}
		e.bus.Close()
	}
	if e.audit != nil {
		if err := e.audit.Close(); err != nil {
			return err
		}
	}
	return e.sync.Close()
}

// Snapshot exposes the current roster state for read-only consumers such
// as reports.
func (e *Engine) Snapshot() roster.Snapshot {
	return e.store.Snapshot()
}

// resolveMission canonicalizes a mission reference and fetches the
// mission.
func (e *Engine) resolveMission(ref string) (string, error) {
	id, err := e.ids.Normalize(ref)
	if err != nil {
		return "", err
	}
	if _, err := e.store.GetMission(id); err != nil {
		return "", err
	}
	return id, nil
}

// publish emits on the bus when one is configured.
func (e *Engine) publish(ev eventbus.Event) {
	if e.bus != nil {
		e.bus.Publish(ev)
	}
}

// record appends to the audit store, logging failures instead of
// propagating them: audit trouble must not fail roster operations.
func (e *Engine) record(rec audit.Record) {
	if e.audit == nil {
		return
	}
	if err := e.audit.Append(context.Background(), rec); err != nil {
		e.log.Errorf("audit append: %v", err)
	}
}

// notify pushes a sync change without blocking the caller.
func (e *Engine) notify(change SyncChange) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.sync.NotifyChange(ctx, change); err != nil {
			e.log.Warnf("sync notify %s/%s: %v", change.Entity, change.ID, err)
		}
	}()
}

// conflictRecords converts detector output for the metrics sink.
func conflictRecords(scope string, list []conflict.Conflict, ts time.Time) []metrics.ConflictRecord {
	recs := make([]metrics.ConflictRecord, 0, len(list))
	for _, c := range list {
		recs = append(recs, metrics.ConflictRecord{
			Scope:     scope,
			Kind:      c.Kind.String(),
			Severity:  c.Severity.String(),
			MissionID: c.MissionID,
			Timestamp: ts,
		})
	}
	return recs
}
