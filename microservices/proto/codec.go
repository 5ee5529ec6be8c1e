package proto

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	errs "combgame/internal/errors"
)

// Encode converts a JSON-tagged value into a Struct.
func Encode(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	return structpb.NewStruct(m)
}

// Decode fills dst from a Struct produced by Encode.
func Decode(s *structpb.Struct, dst any) error {
	data, err := json.Marshal(s.AsMap())
	if err != nil {
		return fmt.Errorf("decode %T: %w", dst, err)
	}
	return json.Unmarshal(data, dst)
}

var invalidArgument = []error{
	errs.ErrInvalidNotation,
	errs.ErrInvalidBoard,
	errs.ErrBoardTooLarge,
	errs.ErrNotShort,
	errs.ErrNotImpartial,
	errs.ErrInvalidRelabelling,
}

// StatusFromError maps engine errors onto gRPC status codes. The status
// message keeps the error text so ErrorFromStatus can restore the sentinel.
func StatusFromError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, errs.ErrAnalysisNotFound):
		return status.Error(codes.NotFound, err.Error())
	}
	for _, target := range invalidArgument {
		if errors.Is(err, target) {
			return status.Error(codes.InvalidArgument, err.Error())
		}
	}
	return status.Error(codes.Internal, err.Error())
}

// ErrorFromStatus turns a status returned by the evaluator back into an
// error that matches the package sentinels with errors.Is.
func ErrorFromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%w: %v", errs.ErrInternal, err)
	}
	msg := st.Message()
	switch st.Code() {
	case codes.OK:
		return nil
	case codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", context.DeadlineExceeded, msg)
	case codes.Canceled:
		return fmt.Errorf("%w: %s", context.Canceled, msg)
	case codes.NotFound:
		return fmt.Errorf("%w: %s", errs.ErrAnalysisNotFound, msg)
	case codes.InvalidArgument:
		for _, target := range invalidArgument {
			if strings.Contains(msg, target.Error()) {
				return fmt.Errorf("%w: %s", target, msg)
			}
		}
	}
	return fmt.Errorf("%w: %s", errs.ErrInternal, msg)
}
