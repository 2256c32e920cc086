// Package browsetrace creates spans around the address-space traversal
// operations (Browse, BrowseNext, TranslateBrowsePathsToNodeIds),
// mirroring the teacher's selective-tracing pattern: a tag carried on
// the context marks which RPCs are part of a traversal, and server-side
// interceptors use it to decide whether to start a span.
package browsetrace

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"addrspaced/internal/telemetry"
)

const (
	browseMetaKey = "x-addrspace-browse"
	tracerName    = "addrspace/browsetrace"
)

var tracer = otel.Tracer(tracerName)

// Start begins a span for a traversal operation named op (e.g.
// "Browse", "BrowseNext", "TranslateBrowsePathsToNodeIds"). Safe to call
// unconditionally: when no tracer provider is configured, the returned
// span is a no-op.
func Start(ctx context.Context, op string) (context.Context, trace.Span) {
	return tracer.Start(ctx, op, trace.WithSpanKind(trace.SpanKindInternal))
}

// StartForSession is Start plus a session.id span attribute, used by the
// traversal operations that are always scoped to a session.
func StartForSession(ctx context.Context, op, sessionID string) (context.Context, trace.Span) {
	ctx, span := Start(ctx, op)
	span.SetAttributes(telemetry.Attribute("session.id", sessionID))
	return ctx, span
}

// WithBrowseFlag tags an outgoing context so a downstream server
// interceptor knows the call belongs to a traversal operation.
func WithBrowseFlag(ctx context.Context) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	md.Set(browseMetaKey, "true")
	return metadata.NewOutgoingContext(ctx, md)
}

func isBrowseTagged(ctx context.Context) bool {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return false
	}
	values := md.Get(browseMetaKey)
	return len(values) > 0 && values[0] == "true"
}

// ServerInterceptor creates spans only for RPCs whose method name
// contains "Browse" or "Translate", or that were explicitly tagged via
// WithBrowseFlag, so unrelated admin calls (Ping, ...) stay untraced.
func ServerInterceptor() grpc.UnaryServerInterceptor {
	propagator := otel.GetTextMapPropagator()

	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			ctx = propagator.Extract(ctx, metadataCarrier(md))
		}

		method := info.FullMethod
		if strings.Contains(method, "Browse") || strings.Contains(method, "Translate") || isBrowseTagged(ctx) {
			ctx, span := tracer.Start(ctx, method, trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()
			return handler(ctx, req)
		}
		return handler(ctx, req)
	}
}

type metadataCarrier metadata.MD

func (mc metadataCarrier) Get(key string) string {
	vals := metadata.MD(mc).Get(key)
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

func (mc metadataCarrier) Set(key, value string) {
	metadata.MD(mc).Set(key, value)
}

func (mc metadataCarrier) Keys() []string {
	out := make([]string, 0, len(mc))
	for k := range mc {
		out = append(out, k)
	}
	return out
}
