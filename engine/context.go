package engine

import "context"

// checkInterrupt is the once-per-processed-constraint cancellation check
// spec.md §5 mandates. It returns a non-nil error only when ctx has been
// canceled or has exceeded its deadline; callers wrap it in
// InterruptedError.
func checkInterrupt(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// requestIDKey threads a request-scoped identifier (minted by the caller,
// typically a uuid.UUID.String()) through the context for log correlation
// across a single unify() call's lifetime; lean.Unify (unify.go in the
// root package) mints one per call.
type requestIDKey struct{}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
