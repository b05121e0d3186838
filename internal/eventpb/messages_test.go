package eventpb

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// droppedOnlyRequest builds a request with zero events and one dropped attempt.
// Params: none.
// Returns: request used by several tests.
func droppedOnlyRequest() *AddEventRequest {
	return &AddEventRequest{
		EventsData: &RayEventsData{
			Events: []*RayEvent{},
			TaskEventsMetadata: &TaskEventsMetadata{
				DroppedTaskAttempts: []*TaskAttempt{
					{TaskId: []byte("abc"), AttemptNumber: 1},
				},
			},
		},
	}
}

func roundTrip[M proto.Message](t *testing.T, in M, out M) M {
	t.Helper()
	payload, err := proto.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := proto.Unmarshal(payload, out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return out
}

// TestAddEventRequest_DroppedOnlyRoundTrip verifies the empty-events/dropped-attempt scenario.
// Params: testing.T for assertions.
// Returns: none.
func TestAddEventRequest_DroppedOnlyRoundTrip(t *testing.T) {
	decoded := roundTrip(t, droppedOnlyRequest(), &AddEventRequest{})

	if got := len(decoded.GetEventsData().GetEvents()); got != 0 {
		t.Fatalf("expected zero events, got %d", got)
	}
	dropped := decoded.GetEventsData().GetTaskEventsMetadata().GetDroppedTaskAttempts()
	if len(dropped) != 1 || dropped[0].Key() != "616263:1" {
		t.Fatalf("unexpected dropped attempts: %v", dropped)
	}
}

// TestAddEventRequest_KeepsRepeatedOrder verifies header fields, order and duplicates survive.
// Params: testing.T for assertions.
// Returns: none.
func TestAddEventRequest_KeepsRepeatedOrder(t *testing.T) {
	ts := time.Date(2026, 3, 4, 5, 6, 7, 8000, time.UTC)
	request := &AddEventRequest{EventsData: &RayEventsData{
		Events: []*RayEvent{
			{
				EventId:    []byte{0x01, 0x02},
				SourceType: SourceType_CORE_WORKER,
				EventType:  EventType_TASK_EXECUTION_EVENT,
				Timestamp:  timestamppb.New(ts),
				Severity:   Severity_INFO,
				Message:    "task finished",
			},
			{EventId: []byte{0x03}, SourceType: SourceType_GCS, Severity: Severity_WARNING},
		},
		TaskEventsMetadata: &TaskEventsMetadata{DroppedTaskAttempts: []*TaskAttempt{
			{TaskId: []byte("t2"), AttemptNumber: 0},
			{TaskId: []byte("t1"), AttemptNumber: 3},
			{TaskId: []byte("t1"), AttemptNumber: 3},
		}},
	}}

	decoded := roundTrip(t, request, &AddEventRequest{})
	if !proto.Equal(decoded, request) {
		t.Fatalf("round trip mismatch:\n got %v\nwant %v", decoded, request)
	}
	if got := decoded.GetEventsData().GetEvents()[0].GetTimestamp().AsTime(); !got.Equal(ts) {
		t.Fatalf("unexpected timestamp: %v", got)
	}
	if decoded.GetEventsData().GetEvents()[1].GetTimestamp() != nil {
		t.Fatalf("expected absent timestamp to stay absent")
	}

	want := []string{"7432:0", "7431:3", "7431:3"}
	for idx, attempt := range decoded.GetEventsData().GetTaskEventsMetadata().GetDroppedTaskAttempts() {
		if attempt.Key() != want[idx] {
			t.Fatalf("dropped[%d]=%s, want %s", idx, attempt.Key(), want[idx])
		}
	}
}

// TestTaskEventsMetadata_FieldNumbering verifies field 1 stays unused on the wire and is tolerated.
// Params: testing.T for assertions.
// Returns: none.
func TestTaskEventsMetadata_FieldNumbering(t *testing.T) {
	metadata := &TaskEventsMetadata{
		DroppedTaskAttempts: []*TaskAttempt{{TaskId: []byte("abc"), AttemptNumber: 1}},
	}
	payload, err := proto.Marshal(metadata)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	num, typ, n := protowire.ConsumeTag(payload)
	if n < 0 {
		t.Fatalf("consume tag: %v", protowire.ParseError(n))
	}
	if num != 2 || typ != protowire.BytesType {
		t.Fatalf("expected field 2 bytes, got field %d type %d", num, typ)
	}

	withReserved := protowire.AppendTag(nil, 1, protowire.VarintType)
	withReserved = protowire.AppendVarint(withReserved, 7)
	withReserved = append(withReserved, payload...)

	var decoded TaskEventsMetadata
	if err := proto.Unmarshal(withReserved, &decoded); err != nil {
		t.Fatalf("unmarshal with field 1: %v", err)
	}
	if len(decoded.GetDroppedTaskAttempts()) != 1 {
		t.Fatalf("unexpected dropped count: %d", len(decoded.GetDroppedTaskAttempts()))
	}
}

// TestAddEventRequest_EmptyBatch verifies absent metadata and empty payloads decode cleanly.
// Params: testing.T for assertions.
// Returns: none.
func TestAddEventRequest_EmptyBatch(t *testing.T) {
	decoded := roundTrip(t, &AddEventRequest{EventsData: &RayEventsData{}}, &AddEventRequest{})
	if decoded.GetEventsData() == nil {
		t.Fatalf("expected present events_data")
	}
	if decoded.GetEventsData().GetTaskEventsMetadata() != nil {
		t.Fatalf("expected absent task_events_metadata")
	}
	if !decoded.GetEventsData().IsEmpty() {
		t.Fatalf("expected empty batch")
	}

	var absent AddEventRequest
	if err := proto.Unmarshal(nil, &absent); err != nil {
		t.Fatalf("unmarshal empty input: %v", err)
	}
	if absent.GetEventsData() != nil || !absent.GetEventsData().IsEmpty() {
		t.Fatalf("expected nil events_data treated as empty batch")
	}
}

// TestAddEventReply_StatusRoundTrip verifies code/message pairs survive encoding.
// Params: testing.T for assertions.
// Returns: none.
func TestAddEventReply_StatusRoundTrip(t *testing.T) {
	statuses := []*AddEventStatus{
		OKStatus(),
		NewStatus(codes.ResourceExhausted, "queue full"),
		{Code: -5, Message: "negative code"},
		{Code: 0, Message: "ok with text"},
	}

	for _, status := range statuses {
		decoded := roundTrip(t, NewReply(status), &AddEventReply{})
		if decoded.GetStatus().GetCode() != status.GetCode() || decoded.GetStatus().GetMessage() != status.GetMessage() {
			t.Fatalf("status mismatch: got %v want %v", decoded.GetStatus(), status)
		}
	}
}

// TestAddEventRequest_IndependentDecodes verifies two decodes of one payload share no memory.
// Params: testing.T for assertions.
// Returns: none.
func TestAddEventRequest_IndependentDecodes(t *testing.T) {
	payload, err := proto.Marshal(droppedOnlyRequest())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var first, second AddEventRequest
	if err := proto.Unmarshal(payload, &first); err != nil {
		t.Fatalf("first unmarshal: %v", err)
	}
	if err := proto.Unmarshal(payload, &second); err != nil {
		t.Fatalf("second unmarshal: %v", err)
	}
	if !proto.Equal(&first, &second) {
		t.Fatalf("decodes differ: %v vs %v", &first, &second)
	}

	first.GetEventsData().GetTaskEventsMetadata().GetDroppedTaskAttempts()[0].TaskId[0] = 'z'
	for idx := range payload {
		payload[idx] = 0
	}
	if got := string(second.GetEventsData().GetTaskEventsMetadata().GetDroppedTaskAttempts()[0].GetTaskId()); got != "abc" {
		t.Fatalf("second decode was mutated: %q", got)
	}
}

// TestRayEvent_PreservesPayloadFields verifies fields beyond the header are forwarded verbatim.
// Params: testing.T for assertions.
// Returns: none.
func TestRayEvent_PreservesPayloadFields(t *testing.T) {
	raw := protowire.AppendTag(nil, 1, protowire.BytesType)
	raw = protowire.AppendBytes(raw, []byte("id"))
	raw = protowire.AppendTag(raw, 9, protowire.BytesType)
	raw = protowire.AppendBytes(raw, []byte{0x0a, 0x01, 0x41})
	raw = protowire.AppendTag(raw, 20, protowire.Fixed64Type)
	raw = protowire.AppendFixed64(raw, 42)

	var event RayEvent
	if err := proto.Unmarshal(raw, &event); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(event.GetEventId()) != "id" {
		t.Fatalf("unexpected event id: %q", event.GetEventId())
	}
	if len(event.ProtoReflect().GetUnknown()) == 0 {
		t.Fatalf("expected opaque payload fields")
	}

	encoded, err := proto.Marshal(&event)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(encoded, raw) {
		t.Fatalf("payload not preserved:\n got %x\nwant %x", encoded, raw)
	}
}

// TestAddEventRequest_RejectsTruncatedInput verifies malformed wire data errors out.
// Params: testing.T for assertions.
// Returns: none.
func TestAddEventRequest_RejectsTruncatedInput(t *testing.T) {
	payload, err := proto.Marshal(droppedOnlyRequest())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded AddEventRequest
	if err := proto.Unmarshal(payload[:len(payload)-2], &decoded); err == nil {
		t.Fatalf("expected truncated input error")
	}
}

// TestTaskAttempt_Valid verifies the shape accepted in dropped metadata.
// Params: testing.T for assertions.
// Returns: none.
func TestTaskAttempt_Valid(t *testing.T) {
	cases := []struct {
		attempt *TaskAttempt
		want    bool
	}{
		{&TaskAttempt{TaskId: []byte("abc"), AttemptNumber: 0}, true},
		{&TaskAttempt{TaskId: []byte("abc"), AttemptNumber: -1}, false},
		{&TaskAttempt{AttemptNumber: 1}, false},
		{nil, false},
	}
	for _, tc := range cases {
		if got := tc.attempt.Valid(); got != tc.want {
			t.Fatalf("Valid(%v)=%v, want %v", tc.attempt, got, tc.want)
		}
	}

	negative := roundTrip(t, &TaskAttempt{TaskId: []byte("x"), AttemptNumber: -1}, &TaskAttempt{})
	if negative.GetAttemptNumber() != -1 {
		t.Fatalf("unexpected attempt number: %d", negative.GetAttemptNumber())
	}
}

// TestParseEnums verifies names are case-insensitive and numbers pass through.
// Params: testing.T for assertions.
// Returns: none.
func TestParseEnums(t *testing.T) {
	if got, err := ParseSourceType("raylet"); err != nil || got != SourceType_RAYLET {
		t.Fatalf("ParseSourceType: got %v err %v", got, err)
	}
	if got, err := ParseEventType(" 2 "); err != nil || got != EventType_TASK_EXECUTION_EVENT {
		t.Fatalf("ParseEventType: got %v err %v", got, err)
	}
	if got, err := ParseSeverity("Warning"); err != nil || got != Severity_WARNING {
		t.Fatalf("ParseSeverity: got %v err %v", got, err)
	}
	if _, err := ParseSeverity("LOUD"); err == nil || !strings.Contains(err.Error(), "unknown severity") {
		t.Fatalf("expected unknown severity error, got %v", err)
	}
}

// TestJSON_CanonicalMapping verifies proto field names, enum names and base64 bytes.
// Params: testing.T for assertions.
// Returns: none.
func TestJSON_CanonicalMapping(t *testing.T) {
	var request AddEventRequest
	body := `{"events_data":{"events":[{"source_type":"GCS","severity":"ERROR","message":"x"}],` +
		`"task_events_metadata":{"dropped_task_attempts":[{"task_id":"YWJj","attempt_number":1}]}}}`
	if err := json.Unmarshal([]byte(body), &request); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	event := request.GetEventsData().GetEvents()[0]
	if event.GetSourceType() != SourceType_GCS || event.GetSeverity() != Severity_ERROR {
		t.Fatalf("unexpected event: %v", event)
	}
	if got := request.GetEventsData().GetTaskEventsMetadata().GetDroppedTaskAttempts()[0].Key(); got != "616263:1" {
		t.Fatalf("unexpected attempt key: %s", got)
	}

	if err := json.Unmarshal([]byte(`{"events_data":{"events":[{"severity":"LOUD"}]}}`), &request); err == nil {
		t.Fatalf("expected unknown enum error")
	}

	encoded, err := json.Marshal(struct {
		Attempt *TaskAttempt   `json:"attempt"`
		Reply   *AddEventReply `json:"reply"`
	}{
		Attempt: &TaskAttempt{TaskId: []byte("abc"), AttemptNumber: 1},
		Reply:   NewReply(OKStatus()),
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"attempt":{"task_id":"YWJj","attempt_number":1},"reply":{"status":{"code":0,"message":""}}}`
	if string(encoded) != want {
		t.Fatalf("unexpected json:\n got %s\nwant %s", encoded, want)
	}
}
