package callcontext

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type KeyContext string

var (
	keySessionID KeyContext = "session_id"
	keyOperation KeyContext = "operation"
	keyStartTime KeyContext = "operation_start_time"
)

// Operation names used in logs
const (
	OperationTurn    = "turn"
	OperationSummary = "summary"
)

// Begin tags ctx with the call session and the operation running on its behalf
func Begin(parentCtx context.Context, sessionID, operation string) context.Context {
	ctx := context.WithValue(parentCtx, keySessionID, sessionID)
	ctx = context.WithValue(ctx, keyOperation, operation)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())
	return ctx
}

// GetSessionID extracts the session ID from context
func GetSessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(keySessionID).(string)
	return id, ok
}

// GetOperation extracts the operation name from context
func GetOperation(ctx context.Context) (string, bool) {
	op, ok := ctx.Value(keyOperation).(string)
	return op, ok
}

// Elapsed returns the time since Begin, or zero for an untagged context
func Elapsed(ctx context.Context) time.Duration {
	start, ok := ctx.Value(keyStartTime).(time.Time)
	if !ok {
		return 0
	}
	return time.Since(start)
}

// Fields returns the zap fields describing ctx. Untagged contexts yield none.
func Fields(ctx context.Context) []zap.Field {
	var fields []zap.Field
	if id, ok := GetSessionID(ctx); ok {
		fields = append(fields, zap.String("session_id", id))
	}
	if op, ok := GetOperation(ctx); ok {
		fields = append(fields, zap.String("operation", op))
	}
	return fields
}
