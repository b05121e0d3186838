package aggregator

import (
	"bytes"
	"container/list"
	"context"
	"fmt"
	"sync"
	"time"

	"eventagg/internal/eventpb"
)

// DroppedRecord aggregates every report of one lost task attempt.
// TaskID is base64 in JSON, like task_id in AddEventRequest.
type DroppedRecord struct {
	TaskID        []byte    `json:"task_id"`
	AttemptNumber int32     `json:"attempt_number"`
	Reports       int64     `json:"reports"`
	FirstSeen     time.Time `json:"first_seen"`
	LastSeen      time.Time `json:"last_seen"`
	LastPeer      string    `json:"last_peer,omitempty"`
}

// DroppedLedger records dropped task attempts reported by producers.
// Repeated reports of the same attempt increase its counter; they are
// never deduplicated away.
type DroppedLedger interface {
	Record(ctx context.Context, batch *Batch) error
	Lookup(ctx context.Context, attempt *eventpb.TaskAttempt) (DroppedRecord, bool, error)
	Close() error
}

// LedgerSink feeds dropped attempts of admitted batches into a ledger.
type LedgerSink struct {
	ledger DroppedLedger
}

// NewLedgerSink wraps ledger as a batch sink.
// Params: ledger target storage.
// Returns: sink implementation.
func NewLedgerSink(ledger DroppedLedger) *LedgerSink {
	return &LedgerSink{ledger: ledger}
}

// Consume records batch dropped attempts; batches without drops are ignored.
// Params: ctx storage context; batch admitted payload.
// Returns: ledger write error.
func (s *LedgerSink) Consume(ctx context.Context, batch *Batch) error {
	if len(batch.Dropped) == 0 {
		return nil
	}
	if err := s.ledger.Record(ctx, batch); err != nil {
		return fmt.Errorf("record dropped attempts of batch %s: %w", batch.ID, err)
	}
	return nil
}

// MemoryLedger keeps dropped records in process memory.
// When full, the least recently inserted attempt is evicted.
type MemoryLedger struct {
	mu         sync.Mutex
	maxEntries int
	records    map[string]*list.Element
	order      *list.List
}

// NewMemoryLedger creates an in-memory ledger.
// Params: maxEntries bound on distinct attempts, 0 means unbounded.
// Returns: ledger instance.
func NewMemoryLedger(maxEntries int) *MemoryLedger {
	return &MemoryLedger{
		maxEntries: maxEntries,
		records:    make(map[string]*list.Element),
		order:      list.New(),
	}
}

// Record adds one report per dropped attempt in batch.
// Params: ctx unused; batch admitted payload.
// Returns: always nil.
func (l *MemoryLedger) Record(_ context.Context, batch *Batch) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, attempt := range batch.Dropped {
		key := attempt.Key()
		if element, ok := l.records[key]; ok {
			record := element.Value.(*DroppedRecord)
			record.Reports++
			record.LastSeen = batch.ReceivedAt
			record.LastPeer = batch.Peer
			continue
		}

		l.records[key] = l.order.PushBack(&DroppedRecord{
			TaskID:        bytes.Clone(attempt.GetTaskId()),
			AttemptNumber: attempt.GetAttemptNumber(),
			Reports:       1,
			FirstSeen:     batch.ReceivedAt,
			LastSeen:      batch.ReceivedAt,
			LastPeer:      batch.Peer,
		})
		l.evictLocked()
	}
	return nil
}

// Lookup returns a copy of the record for attempt.
// Params: ctx unused; attempt task attempt identity.
// Returns: record, found flag, and nil error.
func (l *MemoryLedger) Lookup(_ context.Context, attempt *eventpb.TaskAttempt) (DroppedRecord, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	element, ok := l.records[attempt.Key()]
	if !ok {
		return DroppedRecord{}, false, nil
	}
	return *element.Value.(*DroppedRecord), true, nil
}

// Len returns the number of distinct attempts held.
func (l *MemoryLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Close is a no-op for the memory backend.
func (l *MemoryLedger) Close() error {
	return nil
}

func (l *MemoryLedger) evictLocked() {
	for l.maxEntries > 0 && l.order.Len() > l.maxEntries {
		oldest := l.order.Front()
		record := l.order.Remove(oldest).(*DroppedRecord)
		delete(l.records, recordKey(record))
	}
}

func recordKey(record *DroppedRecord) string {
	return (&eventpb.TaskAttempt{TaskId: record.TaskID, AttemptNumber: record.AttemptNumber}).Key()
}
