package grpc

import (
	"context"
	"errors"

	"github.com/DRSN-tech/bikeshop-backend/internal/pricing"
	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"
	"google.golang.org/protobuf/types/known/structpb"
)

// GRPCErrorResponse переводит ошибку в статус gRPC. Отказ движка цен
// дополнительно кладётся в details как Struct {kind, id, reason}.
func GRPCErrorResponse(err error) error {
	if rej, ok := pricing.AsRejection(err); ok {
		code := codes.InvalidArgument
		if errors.Is(rej, e.ErrNotFound) {
			code = codes.NotFound
		}

		st := status.New(code, rej.Error())
		detail, dErr := structpb.NewStruct(map[string]any{
			"kind":   rej.Kind.String(),
			"id":     rej.ID.String(),
			"reason": rej.Kind.Reason(),
		})
		if dErr != nil {
			return st.Err()
		}
		if withDetails, dErr := st.WithDetails(protoadapt.MessageV1Of(detail)); dErr == nil {
			return withDetails.Err()
		}
		return st.Err()
	}

	switch {
	case errors.Is(err, e.ErrNotFound):
		return status.Error(codes.NotFound, e.ErrNotFound.Error())
	case errors.Is(err, e.ErrInvalidID):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, e.ErrValidation):
		return status.Error(codes.InvalidArgument, e.ErrStatusBadRequest.Error())
	case errors.Is(err, e.ErrConflict):
		return status.Error(codes.FailedPrecondition, e.ErrConflict.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, e.ErrInternalServerError.Error())
	}
}
