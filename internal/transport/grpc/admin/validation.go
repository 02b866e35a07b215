package admin

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"
)

// requireString returns the non-empty string field name of req.
func requireString(req *structpb.Struct, name string) (string, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return "", fmt.Errorf("%s is required", name)
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok || s.StringValue == "" {
		return "", fmt.Errorf("%s must be a non-empty string", name)
	}
	return s.StringValue, nil
}

func optionalString(req *structpb.Struct, name string) string {
	return req.GetFields()[name].GetStringValue()
}

// optionalInt accepts whole numbers and numeric strings; revisions travel
// as strings when they exceed a double's integer range.
func optionalInt(req *structpb.Struct, name string) (int64, bool, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return 0, false, nil
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		if k.NumberValue != math.Trunc(k.NumberValue) {
			return 0, false, fmt.Errorf("%s must be a whole number", name)
		}
		return int64(k.NumberValue), true, nil
	case *structpb.Value_StringValue:
		var n int64
		if _, err := fmt.Sscan(k.StringValue, &n); err != nil {
			return 0, false, fmt.Errorf("%s must be a whole number", name)
		}
		return n, true, nil
	case *structpb.Value_NullValue:
		return 0, false, nil
	}
	return 0, false, fmt.Errorf("%s must be a number", name)
}

func requireInt(req *structpb.Struct, name string) (int64, error) {
	n, ok, err := optionalInt(req, name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%s is required", name)
	}
	return n, nil
}

func requireList(req *structpb.Struct, name string) ([]any, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return nil, fmt.Errorf("%s is required", name)
	}
	l, ok := v.GetKind().(*structpb.Value_ListValue)
	if !ok {
		return nil, fmt.Errorf("%s must be a list", name)
	}
	return l.ListValue.AsSlice(), nil
}
