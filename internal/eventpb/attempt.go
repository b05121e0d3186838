// Package eventpb holds the protobuf messages and gRPC bindings of the
// EventAggregatorService ingestion protocol, generated from
// proto/event_aggregator_service.proto, plus small helpers around them.
package eventpb

//go:generate protoc -I ../../proto --go_out=. --go_opt=paths=source_relative --go-grpc_out=. --go-grpc_opt=paths=source_relative event_aggregator_service.proto

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Key renders the attempt as "<task id hex>:<attempt number>".
func (x *TaskAttempt) Key() string {
	return hex.EncodeToString(x.GetTaskId()) + ":" + strconv.FormatInt(int64(x.GetAttemptNumber()), 10)
}

// Valid reports whether the attempt names a task: a non-empty task id and a
// non-negative attempt number.
func (x *TaskAttempt) Valid() bool {
	return len(x.GetTaskId()) > 0 && x.GetAttemptNumber() >= 0
}

// IsEmpty reports whether the batch has neither events nor dropped attempts.
// A nil batch is empty.
func (x *RayEventsData) IsEmpty() bool {
	return len(x.GetEvents()) == 0 && len(x.GetTaskEventsMetadata().GetDroppedTaskAttempts()) == 0
}

// ParseSourceType accepts a source type name (case-insensitive) or number.
func ParseSourceType(raw string) (SourceType, error) {
	number, err := parseEnum(raw, SourceType_value, "source type")
	return SourceType(number), err
}

// ParseEventType accepts an event type name (case-insensitive) or number.
func ParseEventType(raw string) (EventType, error) {
	number, err := parseEnum(raw, EventType_value, "event type")
	return EventType(number), err
}

// ParseSeverity accepts a severity name (case-insensitive) or number.
func ParseSeverity(raw string) (Severity, error) {
	number, err := parseEnum(raw, Severity_value, "severity")
	return Severity(number), err
}

func parseEnum(raw string, values map[string]int32, kind string) (int32, error) {
	text := strings.TrimSpace(raw)
	if number, err := strconv.ParseInt(text, 10, 32); err == nil {
		return int32(number), nil
	}
	if number, ok := values[strings.ToUpper(text)]; ok {
		return number, nil
	}
	return 0, fmt.Errorf("unknown %s %q", kind, raw)
}
