// Package execution records one document per function invocation so that
// failed or skipped runs are visible without trawling logs.
package execution

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	shared "github.com/coachpulse/server/pkg"
	"github.com/coachpulse/server/pkg/types"
)

// ExecutionOptions carries optional metadata for an execution record.
type ExecutionOptions struct {
	UserID      string
	TriggerType string
}

// LogStart creates a new execution record in STARTED state and returns its ID.
func LogStart(ctx context.Context, db shared.Database, serviceName string, opts ExecutionOptions) (string, error) {
	execID := uuid.NewString()

	record := &types.ExecutionRecord{
		ExecutionID: execID,
		Service:     serviceName,
		UserID:      opts.UserID,
		TriggerType: opts.TriggerType,
		Status:      types.StatusStarted,
		StartedAt:   time.Now().UTC(),
	}

	if err := db.SetExecution(ctx, record); err != nil {
		return execID, fmt.Errorf("failed to write execution record: %w", err)
	}
	return execID, nil
}

// LogSuccess marks the execution as finished successfully.
func LogSuccess(ctx context.Context, db shared.Database, execID string, outputs interface{}) error {
	return LogExecutionStatus(ctx, db, execID, types.StatusSuccess, outputs)
}

// LogFailure marks the execution as failed and records the error string.
func LogFailure(ctx context.Context, db shared.Database, execID string, cause error, outputs interface{}) error {
	updates := finishUpdates(types.StatusFailure, outputs)
	if cause != nil {
		updates["error"] = cause.Error()
	}
	return db.UpdateExecution(ctx, execID, updates)
}

// LogExecutionStatus marks the execution as finished with an explicit status.
func LogExecutionStatus(ctx context.Context, db shared.Database, execID string, status string, outputs interface{}) error {
	return db.UpdateExecution(ctx, execID, finishUpdates(status, outputs))
}

func finishUpdates(status string, outputs interface{}) map[string]interface{} {
	updates := map[string]interface{}{
		"status":      status,
		"finished_at": time.Now().UTC(),
	}
	if outputs != nil {
		updates["outputs"] = outputs
	}
	return updates
}
