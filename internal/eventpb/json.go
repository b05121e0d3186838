package eventpb

import (
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// JSON uses the canonical protobuf mapping with the .proto field names:
// enums as names, bytes as base64, timestamps as RFC 3339.
var (
	jsonMarshal   = protojson.MarshalOptions{UseProtoNames: true, EmitUnpopulated: true}
	jsonUnmarshal = protojson.UnmarshalOptions{}
)

// MarshalJSON lets encoding/json embed protocol messages in other documents.
func (x *TaskAttempt) MarshalJSON() ([]byte, error) { return jsonMarshal.Marshal(x) }

// UnmarshalJSON implements json.Unmarshaler.
func (x *TaskAttempt) UnmarshalJSON(data []byte) error { return unmarshalJSON(data, x) }

// MarshalJSON implements json.Marshaler.
func (x *RayEvent) MarshalJSON() ([]byte, error) { return jsonMarshal.Marshal(x) }

// UnmarshalJSON implements json.Unmarshaler.
func (x *RayEvent) UnmarshalJSON(data []byte) error { return unmarshalJSON(data, x) }

// MarshalJSON implements json.Marshaler.
func (x *AddEventRequest) MarshalJSON() ([]byte, error) { return jsonMarshal.Marshal(x) }

// UnmarshalJSON implements json.Unmarshaler.
func (x *AddEventRequest) UnmarshalJSON(data []byte) error { return unmarshalJSON(data, x) }

// MarshalJSON implements json.Marshaler.
func (x *AddEventReply) MarshalJSON() ([]byte, error) { return jsonMarshal.Marshal(x) }

// UnmarshalJSON implements json.Unmarshaler.
func (x *AddEventReply) UnmarshalJSON(data []byte) error { return unmarshalJSON(data, x) }

func unmarshalJSON(data []byte, message proto.Message) error {
	proto.Reset(message)
	return jsonUnmarshal.Unmarshal(data, message)
}
