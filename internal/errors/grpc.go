package errors

import (
	"encoding/json"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

var grpcCodes = map[Code]codes.Code{
	CodeOK:                 codes.OK,
	CodeCanceled:           codes.Canceled,
	CodeInvalidArgument:    codes.InvalidArgument,
	CodeDeadlineExceeded:   codes.DeadlineExceeded,
	CodeNotFound:           codes.NotFound,
	CodeAlreadyExists:      codes.AlreadyExists,
	CodePermissionDenied:   codes.PermissionDenied,
	CodeResourceExhausted:  codes.ResourceExhausted,
	CodeFailedPrecondition: codes.FailedPrecondition,
	CodeAborted:            codes.Aborted,
	CodeOutOfRange:         codes.OutOfRange,
	CodeUnimplemented:      codes.Unimplemented,
	CodeInternal:           codes.Internal,
	CodeUnavailable:        codes.Unavailable,
	CodeDataLoss:           codes.DataLoss,
	CodeUnauthenticated:    codes.Unauthenticated,
}

var fromGRPCCodes = func() map[codes.Code]Code {
	m := make(map[codes.Code]Code, len(grpcCodes))
	for c, g := range grpcCodes {
		m[g] = c
	}
	return m
}()

// GRPCCode returns the matching gRPC code
func (c Code) GRPCCode() codes.Code {
	if g, ok := grpcCodes[c]; ok {
		return g
	}
	return codes.Unknown
}

// ToGRPCError converts err into a gRPC status error. Metadata travels as a
// google.protobuf.Struct detail.
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := status.FromError(err); ok {
		return err
	}

	var customErr *Error
	if !As(err, &customErr) {
		return status.Error(codes.Internal, err.Error())
	}

	st := status.New(customErr.Code.GRPCCode(), customErr.Message)
	if len(customErr.Meta) > 0 {
		if details, derr := metaStruct(customErr); derr == nil {
			if withDetails, werr := st.WithDetails(details); werr == nil {
				st = withDetails
			}
		}
	}

	return st.Err()
}

// FromGRPCError converts a gRPC status error back into an *Error
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	code, ok := fromGRPCCodes[st.Code()]
	if !ok {
		code = CodeInternal
	}

	customErr := &Error{Code: code, Message: st.Message()}
	for _, detail := range st.Details() {
		details, ok := detail.(*structpb.Struct)
		if !ok {
			continue
		}
		if meta := details.GetFields()["meta"].GetStructValue(); meta != nil {
			customErr.Meta = meta.AsMap()
		}
		break
	}

	return customErr
}

// GRPCStatus returns the gRPC status for any error
func GRPCStatus(err error) *status.Status {
	if err == nil {
		return status.New(codes.OK, "")
	}
	st, _ := status.FromError(ToGRPCError(err))
	return st
}

// metaStruct round-trips meta through JSON so slices and nested maps of
// any concrete type are accepted by structpb.
func metaStruct(e *Error) (*structpb.Struct, error) {
	raw, err := json.Marshal(e.Meta)
	if err != nil {
		return nil, err
	}
	var meta map[string]any
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, err
	}
	return structpb.NewStruct(map[string]any{
		"code":    string(e.Code),
		"message": e.Message,
		"meta":    meta,
	})
}
