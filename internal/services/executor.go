package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/internal/models"
	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/pkg/azure"
)

// Executor issues snapshot-creation calls and classifies the outcome.
// One call per disk, blocking, no retry, no failure sub-classification:
// any provider error becomes SnapshotFailed with the message verbatim.
type Executor struct {
	logger *zap.SugaredLogger
}

func NewExecutor() *Executor {
	return &Executor{logger: zap.S().Named("executor")}
}

func (e *Executor) Create(ctx context.Context, client azure.ContextClient, req models.SnapshotRequest) models.SnapshotOutcome {
	if err := client.CreateSnapshot(ctx, req); err != nil {
		return models.SnapshotOutcome{State: models.SnapshotFailed, Err: err}
	}
	e.logger.Infow("snapshot created", "name", req.Name, "resource_group", req.ResourceGroup)
	return models.SnapshotOutcome{State: models.SnapshotCreated}
}
