package eventpb

import (
	"fmt"

	"google.golang.org/grpc/codes"
)

// OKStatus returns the success status: code 0 with an empty message.
func OKStatus() *AddEventStatus {
	return &AddEventStatus{Code: int32(codes.OK)}
}

// NewStatus builds a status from a canonical code and formatted message.
func NewStatus(code codes.Code, format string, args ...any) *AddEventStatus {
	return &AddEventStatus{
		Code:    int32(code),
		Message: fmt.Sprintf(format, args...),
	}
}

// NewReply wraps a status into a reply.
func NewReply(status *AddEventStatus) *AddEventReply {
	return &AddEventReply{Status: status}
}

// CanonicalCode returns the status code as a grpc codes.Code.
func (s *AddEventStatus) CanonicalCode() codes.Code {
	return codes.Code(uint32(s.GetCode()))
}

// IsOK reports success. A missing status is not a success.
func (s *AddEventStatus) IsOK() bool {
	return s != nil && s.Code == int32(codes.OK)
}

// Err converts a non-OK status into a *StatusError, or nil on success.
func (s *AddEventStatus) Err() error {
	if s.IsOK() {
		return nil
	}
	if s == nil {
		return &StatusError{Code: codes.Unknown, Message: "reply carries no status"}
	}
	return &StatusError{Code: s.CanonicalCode(), Message: s.Message}
}

// StatusError is an application-level rejection reported inside
// AddEventReply. It is a soft failure: the call reached the aggregator and
// must not be retried blindly.
type StatusError struct {
	Code    codes.Code
	Message string
}

// Error implements error.
func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("aggregator rejected batch: %s", e.Code)
	}
	return fmt.Sprintf("aggregator rejected batch: %s: %s", e.Code, e.Message)
}
