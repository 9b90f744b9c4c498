// Package tracking contains the update coalescer: the in-memory buffer that
// absorbs near-duplicate rider location reports and replays the newest one on
// a periodic flush tick.
package tracking

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"livetrack/internal/core/domain/model/kernel"
	"livetrack/internal/pkg/errs"
)

// DefaultEtaChangeThresholdMinutes is the ETA delta below which consecutive
// reports for the same order are considered near-duplicates.
const DefaultEtaChangeThresholdMinutes = 2

// Update is one accepted rider location report on its way to the order store,
// the track history log and the broadcast fan-out.
type Update struct {
	OrderID    kernel.UUID
	CustomerID kernel.UUID
	RiderID    kernel.UUID
	Position   kernel.GeoPoint
	EtaMinutes *int
	Delivery   *kernel.GeoPoint
	ReportedAt time.Time

	// seq orders updates per order; assigned by the coalescer on submit.
	seq uint64
}

// Applier performs the full write path for one update: order store write,
// track point append, proximity check and broadcast.
type Applier interface {
	Apply(ctx context.Context, update Update) error
}

// Coalescer buffers near-duplicate location updates per order and flushes the
// newest buffered update on a timer tick. Reports whose ETA jumped by the
// configured threshold or more bypass the buffer so large changes are never
// delayed.
//
// Per-order sequence numbers make the two paths safe to race: an update is
// never applied after a newer one for the same order already was.
//
// Safe for concurrent use.
type Coalescer struct {
	applier      Applier
	etaThreshold int
	log          *slog.Logger

	mu sync.Mutex
	// lastSeen holds the most recent accepted update per order, flushed or
	// not; it supplies lastKnownEta for the near-duplicate check.
	lastSeen map[kernel.UUID]Update
	// pending holds updates waiting for the next flush tick.
	pending map[kernel.UUID]Update
	seq     map[kernel.UUID]uint64

	// applyMu serializes Apply calls so the lastApplied check and the write
	// it guards cannot interleave between the immediate and flush paths.
	applyMu     sync.Mutex
	lastApplied map[kernel.UUID]uint64
}

// NewCoalescer creates a coalescer. etaThresholdMinutes values below one fall
// back to DefaultEtaChangeThresholdMinutes.
func NewCoalescer(applier Applier, etaThresholdMinutes int, log *slog.Logger) (*Coalescer, error) {
	if applier == nil {
		return nil, errs.NewValueIsRequiredError("applier")
	}
	if log == nil {
		return nil, errs.NewValueIsRequiredError("log")
	}
	if etaThresholdMinutes < 1 {
		etaThresholdMinutes = DefaultEtaChangeThresholdMinutes
	}

	return &Coalescer{
		applier:      applier,
		etaThreshold: etaThresholdMinutes,
		log:          log.With("component", "coalescer"),
		lastSeen:     make(map[kernel.UUID]Update),
		pending:      make(map[kernel.UUID]Update),
		seq:          make(map[kernel.UUID]uint64),
		lastApplied:  make(map[kernel.UUID]uint64),
	}, nil
}

// Submit routes one accepted update. It returns buffered=true when the update
// was absorbed into the buffer for the next flush tick, and buffered=false
// when it was applied immediately; err is only set on the immediate path.
func (c *Coalescer) Submit(ctx context.Context, update Update) (buffered bool, err error) {
	c.mu.Lock()

	c.seq[update.OrderID]++
	update.seq = c.seq[update.OrderID]

	last, seen := c.lastSeen[update.OrderID]
	c.lastSeen[update.OrderID] = update

	if seen && c.isNearDuplicate(last.EtaMinutes, update.EtaMinutes) {
		c.pending[update.OrderID] = update
		c.mu.Unlock()
		return true, nil
	}

	// Immediate path: any buffered update is superseded by this one.
	delete(c.pending, update.OrderID)
	c.mu.Unlock()

	return false, c.apply(ctx, update)
}

// Flush applies every pending update once. Entries leave the buffer whether
// their apply succeeds or fails; a failed flush is logged and the sample
// dropped.
func (c *Coalescer) Flush(ctx context.Context) {
	c.mu.Lock()
	batch := c.pending
	c.pending = make(map[kernel.UUID]Update)
	c.mu.Unlock()

	for _, update := range batch {
		if err := c.apply(ctx, update); err != nil {
			c.log.Error("flush of buffered location update failed, sample dropped",
				"order_id", update.OrderID.String(),
				"error", err)
		}
	}
}

// Drop discards all coalescer state for an order; called when the order
// leaves the trackable states.
func (c *Coalescer) Drop(orderID kernel.UUID) {
	c.mu.Lock()
	delete(c.pending, orderID)
	delete(c.lastSeen, orderID)
	delete(c.seq, orderID)
	c.mu.Unlock()

	c.applyMu.Lock()
	delete(c.lastApplied, orderID)
	c.applyMu.Unlock()
}

// PendingCount returns the number of buffered updates awaiting a flush.
func (c *Coalescer) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// isNearDuplicate reports whether the ETA moved less than the threshold. A
// missing value on either side counts as a large change, forcing the
// immediate path.
func (c *Coalescer) isNearDuplicate(lastEta, newEta *int) bool {
	if lastEta == nil || newEta == nil {
		return false
	}

	diff := *lastEta - *newEta
	if diff < 0 {
		diff = -diff
	}
	return diff < c.etaThreshold
}

func (c *Coalescer) apply(ctx context.Context, update Update) error {
	c.applyMu.Lock()
	defer c.applyMu.Unlock()

	if update.seq <= c.lastApplied[update.OrderID] {
		c.log.Debug("skipping stale location update",
			"order_id", update.OrderID.String(),
			"seq", update.seq)
		return nil
	}

	if err := c.applier.Apply(ctx, update); err != nil {
		return err
	}

	c.lastApplied[update.OrderID] = update.seq
	return nil
}
