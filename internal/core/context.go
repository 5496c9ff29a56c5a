package core

import "context"

type contextKey string

const (
	ctxKeyClientIP  contextKey = "client_ip"
	ctxKeyUserAgent contextKey = "user_agent"
)

// ContextWithClient records who asked for a conversion so service logs can
// name them.
func ContextWithClient(ctx context.Context, ip, userAgent string) context.Context {
	if ip != "" {
		ctx = context.WithValue(ctx, ctxKeyClientIP, ip)
	}
	if userAgent != "" {
		ctx = context.WithValue(ctx, ctxKeyUserAgent, userAgent)
	}
	return ctx
}

// ClientFromContext returns the values stored by ContextWithClient.
func ClientFromContext(ctx context.Context) (ip, userAgent string) {
	ip, _ = ctx.Value(ctxKeyClientIP).(string)
	userAgent, _ = ctx.Value(ctxKeyUserAgent).(string)
	return ip, userAgent
}

// clientLogArgs returns slog attributes for the stored client, if any.
func clientLogArgs(ctx context.Context) []any {
	ip, ua := ClientFromContext(ctx)
	var args []any
	if ip != "" {
		args = append(args, "client_ip", ip)
	}
	if ua != "" {
		args = append(args, "user_agent", ua)
	}
	return args
}
