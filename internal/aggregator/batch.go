// Package aggregator implements the AddEvents ingestion endpoint, its
// admission policy, and the sink chain that admitted batches drain into.
package aggregator

import (
	"time"

	"eventagg/internal/eventpb"
)

// Batch is one admitted AddEvents request after filtering.
// Params: events and dropped attempts accepted from one producer call.
// Returns: unit of work handed to sinks.
type Batch struct {
	ID         string                 `json:"id"`
	ReceivedAt time.Time              `json:"received_at"`
	Peer       string                 `json:"peer,omitempty"`
	Events     []*eventpb.RayEvent    `json:"events,omitempty"`
	Dropped    []*eventpb.TaskAttempt `json:"dropped,omitempty"`
}

// Size returns the number of events plus dropped attempts carried by the batch.
func (b *Batch) Size() int {
	if b == nil {
		return 0
	}
	return len(b.Events) + len(b.Dropped)
}

// request rebuilds a wire request carrying the batch contents.
func (b *Batch) request() *eventpb.AddEventRequest {
	data := &eventpb.RayEventsData{Events: b.Events}
	if len(b.Dropped) > 0 {
		data.TaskEventsMetadata = &eventpb.TaskEventsMetadata{DroppedTaskAttempts: b.Dropped}
	}
	return &eventpb.AddEventRequest{EventsData: data}
}
