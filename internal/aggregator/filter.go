package aggregator

import (
	"fmt"
	"strings"

	"eventagg/internal/eventpb"
	"eventagg/internal/match"
)

type conditionOperator string

const (
	operatorEQ conditionOperator = "="
	operatorNE conditionOperator = "!="
	operatorGT conditionOperator = ">"
	operatorLT conditionOperator = "<"
)

const (
	fieldSourceType = "source_type"
	fieldEventType  = "event_type"
	fieldSeverity   = "severity"
	fieldMessage    = "message"
)

// DropCondition is one compiled drop_event expression.
// Params: raw condition and parsed parts.
// Returns: evaluatable drop condition.
type DropCondition struct {
	Raw   string
	Field string
	Op    conditionOperator
	Value string

	number   int32
	isNumber bool
	pattern  match.Pattern
}

// ParseDropCondition parses one drop_event expression.
// Params: expression in format <field><op><value>.
// Returns: compiled drop condition or parse error.
func ParseDropCondition(expression string) (DropCondition, error) {
	raw := strings.TrimSpace(expression)
	if raw == "" {
		return DropCondition{}, fmt.Errorf("empty expression")
	}

	field, op, value, ok := splitCondition(raw)
	if !ok {
		return DropCondition{}, fmt.Errorf("invalid expression %q", raw)
	}
	if value == "" {
		return DropCondition{}, fmt.Errorf("value is empty in expression %q", raw)
	}

	condition := DropCondition{Raw: raw, Field: field, Op: op, Value: value}
	condition.pattern, _ = match.Compile(value)

	switch field {
	case fieldSourceType, fieldEventType, fieldSeverity:
		number, err := parseEnumValue(field, value)
		if err == nil {
			condition.number = number
			condition.isNumber = true
		}
		if (op == operatorGT || op == operatorLT) && !condition.isNumber {
			return DropCondition{}, fmt.Errorf("%s%s needs a known enum value, got %q", field, op, value)
		}
		if !condition.isNumber && !condition.pattern.HasWildcard() {
			return DropCondition{}, fmt.Errorf("unknown %s value %q", field, value)
		}
	case fieldMessage:
		if op == operatorGT || op == operatorLT {
			return DropCondition{}, fmt.Errorf("operator %s is not supported for %s", op, field)
		}
	case "":
		return DropCondition{}, fmt.Errorf("field is empty in expression %q", raw)
	default:
		return DropCondition{}, fmt.Errorf("unknown field %q in expression %q", field, raw)
	}

	return condition, nil
}

// CompileDropConditions parses all configured drop_event expressions.
// Params: expressions from filter.drop_event.
// Returns: compiled conditions or first parse error.
func CompileDropConditions(expressions []string) ([]DropCondition, error) {
	out := make([]DropCondition, 0, len(expressions))
	for idx, expression := range expressions {
		condition, err := ParseDropCondition(expression)
		if err != nil {
			return nil, fmt.Errorf("filter.drop_event[%d]: %w", idx, err)
		}
		out = append(out, condition)
	}
	return out, nil
}

// ShouldDrop evaluates OR logic over all configured drop conditions.
// Params: conditions compiled rules; event candidate event.
// Returns: true when any condition matches.
func ShouldDrop(conditions []DropCondition, event *eventpb.RayEvent) bool {
	for _, condition := range conditions {
		if condition.Matches(event) {
			return true
		}
	}
	return false
}

// Matches evaluates one condition against an event header.
// Params: event candidate event.
// Returns: true when condition matches.
func (c DropCondition) Matches(event *eventpb.RayEvent) bool {
	switch c.Field {
	case fieldSourceType:
		source := event.GetSourceType()
		return c.compareEnum(int32(source), source.String())
	case fieldEventType:
		eventType := event.GetEventType()
		return c.compareEnum(int32(eventType), eventType.String())
	case fieldSeverity:
		severity := event.GetSeverity()
		return c.compareEnum(int32(severity), severity.String())
	case fieldMessage:
		return c.compareString(event.GetMessage())
	default:
		return false
	}
}

// compareEnum compares an enum by number, or by name when the value is a wildcard.
// Params: number enum value; name enum name.
// Returns: true when comparison succeeds.
func (c DropCondition) compareEnum(number int32, name string) bool {
	switch c.Op {
	case operatorGT:
		return number > c.number
	case operatorLT:
		return number < c.number
	}

	if c.isNumber {
		if c.Op == operatorEQ {
			return number == c.number
		}
		return number != c.number
	}
	return c.compareString(name)
}

// compareString compares strings with optional wildcard support.
// Params: actual event string value.
// Returns: true when comparison succeeds.
func (c DropCondition) compareString(actual string) bool {
	matched := c.pattern.Match(actual)

	switch c.Op {
	case operatorEQ:
		return matched
	case operatorNE:
		return !matched
	default:
		return false
	}
}

// splitCondition splits raw expression into field/operator/value.
// Params: raw expression text.
// Returns: field, operator, value, and parse-ok flag.
func splitCondition(raw string) (string, conditionOperator, string, bool) {
	idx := strings.IndexAny(raw, "!=<>")
	if idx < 0 {
		return "", "", "", false
	}

	op := conditionOperator(raw[idx : idx+1])
	valueStart := idx + 1
	if raw[idx] == '!' {
		if !strings.HasPrefix(raw[idx:], string(operatorNE)) {
			return "", "", "", false
		}
		op = operatorNE
		valueStart = idx + len(operatorNE)
	}

	field := strings.ToLower(strings.TrimSpace(raw[:idx]))
	return field, op, strings.TrimSpace(raw[valueStart:]), true
}

// parseEnumValue resolves an enum name or number for the given field.
// Params: field filter field; value name or decimal number.
// Returns: enum number or error.
func parseEnumValue(field, value string) (int32, error) {
	switch field {
	case fieldSourceType:
		out, err := eventpb.ParseSourceType(value)
		return int32(out), err
	case fieldEventType:
		out, err := eventpb.ParseEventType(value)
		return int32(out), err
	default:
		out, err := eventpb.ParseSeverity(value)
		return int32(out), err
	}
}
