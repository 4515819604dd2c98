package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger records operational lifecycle events such as startup,
// dataset load and shutdown.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
