package v1alpha1

import (
	"encoding/json"
	"math"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/villainous-api/internal/errors"
)

// request reads typed fields out of a Struct, collecting type errors
type request struct {
	fields map[string]*structpb.Value
	vb     *errors.ValidationBuilder
}

func newRequest(in *structpb.Struct) *request {
	return &request{fields: in.GetFields(), vb: errors.NewValidationBuilder()}
}

func (r *request) sub(key string) *request {
	return &request{fields: r.fields[key].GetStructValue().GetFields(), vb: r.vb}
}

func (r *request) has(key string) bool {
	v, ok := r.fields[key]
	if !ok {
		return false
	}
	_, isNull := v.GetKind().(*structpb.Value_NullValue)
	return !isNull
}

func (r *request) str(key string) string {
	if !r.has(key) {
		return ""
	}
	s, ok := r.fields[key].GetKind().(*structpb.Value_StringValue)
	if !ok {
		r.vb.InvalidField(key, "must be a string")
		return ""
	}
	return s.StringValue
}

func (r *request) required(key string) string {
	if _, isString := r.fields[key].GetKind().(*structpb.Value_StringValue); r.has(key) && !isString {
		return r.str(key)
	}
	s := r.str(key)
	if s == "" {
		r.vb.RequiredField(key)
	}
	return s
}

func (r *request) integer(key string) int {
	if !r.has(key) {
		return 0
	}
	n, ok := r.fields[key].GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue != math.Trunc(n.NumberValue) {
		r.vb.InvalidField(key, "must be an integer")
		return 0
	}
	return int(n.NumberValue)
}

func (r *request) optionalInt(key string) *int {
	if !r.has(key) {
		return nil
	}
	n := r.integer(key)
	return &n
}

func (r *request) boolean(key string) bool {
	if !r.has(key) {
		return false
	}
	b, ok := r.fields[key].GetKind().(*structpb.Value_BoolValue)
	if !ok {
		r.vb.InvalidField(key, "must be a boolean")
		return false
	}
	return b.BoolValue
}

func (r *request) strings(key string) []string {
	if !r.has(key) {
		return nil
	}
	list, ok := r.fields[key].GetKind().(*structpb.Value_ListValue)
	if !ok {
		r.vb.InvalidField(key, "must be a list of strings")
		return nil
	}
	out := make([]string, 0, len(list.ListValue.GetValues()))
	for _, v := range list.ListValue.GetValues() {
		s, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			r.vb.InvalidField(key, "must be a list of strings")
			return nil
		}
		out = append(out, s.StringValue)
	}
	return out
}

func (r *request) err() error {
	return r.vb.Build()
}

// response encodes v through its json tags
func response(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}
	return out, nil
}

// Decode unpacks a response Struct into v through its json tags
func Decode(in *structpb.Struct, v any) error {
	raw, err := protojson.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
