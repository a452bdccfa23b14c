package middleware

import "context"

type contextKey string

const ctxTerminalID contextKey = "terminal_id"

// TerminalIDFromContext returns the terminal resolved by the Terminal middleware.
func TerminalIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxTerminalID).(string); ok {
		return v
	}
	return ""
}

func WithTerminalID(ctx context.Context, terminalID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxTerminalID, terminalID)
}
