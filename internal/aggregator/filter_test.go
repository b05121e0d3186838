package aggregator

import (
	"strings"
	"testing"

	"eventagg/internal/eventpb"
)

func taskEvent(source eventpb.SourceType, severity eventpb.Severity, message string) *eventpb.RayEvent {
	return &eventpb.RayEvent{
		SourceType: source,
		EventType:  eventpb.EventType_TASK_EXECUTION_EVENT,
		Severity:   severity,
		Message:    message,
	}
}

// TestDropCondition_EnumByName verifies enum fields match by name and by number.
// Params: testing.T for assertions.
// Returns: none.
func TestDropCondition_EnumByName(t *testing.T) {
	byName, err := ParseDropCondition("source_type=raylet")
	if err != nil {
		t.Fatalf("parse by name: %v", err)
	}
	byNumber, err := ParseDropCondition("source_type = 3")
	if err != nil {
		t.Fatalf("parse by number: %v", err)
	}

	raylet := taskEvent(eventpb.SourceType_RAYLET, eventpb.Severity_INFO, "")
	worker := taskEvent(eventpb.SourceType_CORE_WORKER, eventpb.Severity_INFO, "")
	for _, condition := range []DropCondition{byName, byNumber} {
		if !condition.Matches(raylet) {
			t.Fatalf("%q: expected RAYLET event to match", condition.Raw)
		}
		if condition.Matches(worker) {
			t.Fatalf("%q: expected CORE_WORKER event not to match", condition.Raw)
		}
	}
}

// TestDropCondition_SeverityOrdering verifies < and > compare enum numbers.
// Params: testing.T for assertions.
// Returns: none.
func TestDropCondition_SeverityOrdering(t *testing.T) {
	condition, err := ParseDropCondition("severity<INFO")
	if err != nil {
		t.Fatalf("parse condition: %v", err)
	}

	if !condition.Matches(taskEvent(eventpb.SourceType_GCS, eventpb.Severity_DEBUG, "")) {
		t.Fatalf("expected DEBUG to be below INFO")
	}
	if condition.Matches(taskEvent(eventpb.SourceType_GCS, eventpb.Severity_INFO, "")) {
		t.Fatalf("expected INFO not to be below INFO")
	}
	if condition.Matches(taskEvent(eventpb.SourceType_GCS, eventpb.Severity_ERROR, "")) {
		t.Fatalf("expected ERROR not to be below INFO")
	}
}

// TestDropCondition_WildcardValues verifies wildcard matching on names and messages.
// Params: testing.T for assertions.
// Returns: none.
func TestDropCondition_WildcardValues(t *testing.T) {
	actorTypes, err := ParseDropCondition("event_type=ACTOR_*")
	if err != nil {
		t.Fatalf("parse event_type: %v", err)
	}
	actor := &eventpb.RayEvent{EventType: eventpb.EventType_ACTOR_TASK_EXECUTION_EVENT}
	if !actorTypes.Matches(actor) {
		t.Fatalf("expected ACTOR_TASK_EXECUTION_EVENT to match ACTOR_*")
	}
	if actorTypes.Matches(taskEvent(eventpb.SourceType_GCS, eventpb.Severity_INFO, "")) {
		t.Fatalf("expected TASK_EXECUTION_EVENT not to match ACTOR_*")
	}

	notHeartbeat, err := ParseDropCondition("message!=*heartbeat*")
	if err != nil {
		t.Fatalf("parse message: %v", err)
	}
	if notHeartbeat.Matches(taskEvent(eventpb.SourceType_GCS, eventpb.Severity_INFO, "node heartbeat ok")) {
		t.Fatalf("expected heartbeat message not to match !=")
	}
	if !notHeartbeat.Matches(taskEvent(eventpb.SourceType_GCS, eventpb.Severity_INFO, "task started")) {
		t.Fatalf("expected other message to match !=")
	}
}

// TestShouldDrop_AnyConditionMatches verifies OR semantics across rules.
// Params: testing.T for assertions.
// Returns: none.
func TestShouldDrop_AnyConditionMatches(t *testing.T) {
	conditions, err := CompileDropConditions([]string{"severity=TRACE", "source_type=AUTOSCALER"})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	if !ShouldDrop(conditions, taskEvent(eventpb.SourceType_GCS, eventpb.Severity_TRACE, "")) {
		t.Fatalf("expected TRACE event to be dropped")
	}
	if !ShouldDrop(conditions, taskEvent(eventpb.SourceType_AUTOSCALER, eventpb.Severity_ERROR, "")) {
		t.Fatalf("expected AUTOSCALER event to be dropped")
	}
	if ShouldDrop(conditions, taskEvent(eventpb.SourceType_GCS, eventpb.Severity_ERROR, "")) {
		t.Fatalf("expected GCS ERROR event to be kept")
	}
	if ShouldDrop(nil, taskEvent(eventpb.SourceType_GCS, eventpb.Severity_TRACE, "")) {
		t.Fatalf("expected no drop without conditions")
	}
}

// TestCompileDropConditions_Invalid verifies parse errors name the rule index.
// Params: testing.T for assertions.
// Returns: none.
func TestCompileDropConditions_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		want       string
	}{
		{name: "no operator", expression: "severity", want: "invalid expression"},
		{name: "empty value", expression: "severity=", want: "value is empty"},
		{name: "empty field", expression: "=INFO", want: "field is empty"},
		{name: "unknown field", expression: "host=a", want: "unknown field"},
		{name: "unknown enum", expression: "severity=LOUD", want: "unknown severity value"},
		{name: "ordering needs number", expression: "severity>WARN*", want: "needs a known enum value"},
		{name: "ordering on message", expression: "message>a", want: "not supported"},
		{name: "lone bang", expression: "severity!INFO", want: "invalid expression"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CompileDropConditions([]string{"severity=INFO", tc.expression})
			if err == nil {
				t.Fatalf("expected error for %q", tc.expression)
			}
			if !strings.Contains(err.Error(), "filter.drop_event[1]") || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("unexpected error for %q: %v", tc.expression, err)
			}
		})
	}
}
