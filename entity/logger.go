package entity

import "context"

// Logger specifies a contextual, structured logger.
// Warnings go through Error with the sentinel-wrapped cause.
type Logger interface {
	Info(ctx context.Context, msg string, kv ...any)
	Error(ctx context.Context, msg string, err error, kv ...any)
}
