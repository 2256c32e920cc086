// Package ctxutil provides the context-cancellation check the admin gRPC
// handlers (internal/transport/adminpb) run before doing any work.
package ctxutil

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CheckContext reports whether ctx has already been canceled or its
// deadline exceeded, translating either into the matching gRPC status.
// Handlers call this first, before touching the store or the session
// registry.
func CheckContext(ctx context.Context) error {
	switch err := ctx.Err(); {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request was canceled by client")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request deadline exceeded")
	default:
		return nil
	}
}
