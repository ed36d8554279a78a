package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/internal/models"
	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/pkg/azure"
	srvErrors "github.com/vikasmahi-dev/azure-vm-snapshot-tool/pkg/errors"
	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/pkg/naming"
)

// RunnerOptions configures one snapshot run.
type RunnerOptions struct {
	Ticket        string
	Scheme        naming.Scheme
	MaxNameLength int
	// SnapshotResourceGroup overrides where snapshots land; empty means
	// the VM's own resource group.
	SnapshotResourceGroup string
}

// Runner is the orchestrator: contexts are enumerated once, then VMs are
// processed one at a time, each disk as one blocking provider round-trip.
// The report accumulator is owned here and threaded through every step.
type Runner struct {
	provider azure.Provider
	locator  *Locator
	executor *Executor
	opts     RunnerOptions
	logger   *zap.SugaredLogger
}

func NewRunner(provider azure.Provider, policy SearchPolicy, opts RunnerOptions) *Runner {
	return &Runner{
		provider: provider,
		locator:  NewLocator(provider, policy),
		executor: NewExecutor(),
		opts:     opts,
		logger:   zap.S().Named("runner"),
	}
}

// Run executes the whole discovery-naming-execution-reporting sequence.
// Fatal conditions (enumeration failure, empty valid-context set) return
// an error with no report; everything past enumeration is captured into
// report entries so no single VM or disk halts the remainder.
func (r *Runner) Run(ctx context.Context, vmIDs []string) (*models.Report, error) {
	contexts, err := r.provider.ListAccountContexts(ctx)
	if err != nil {
		return nil, err
	}
	if len(contexts) == 0 {
		return nil, srvErrors.NewNoValidContextsError()
	}
	r.logger.Infow("account contexts enumerated", "count", len(contexts))

	report := models.NewReport(strings.TrimSpace(r.opts.Ticket))
	for _, vmID := range vmIDs {
		r.processVM(ctx, contexts, vmID, report)
	}
	return report, nil
}

func (r *Runner) processVM(ctx context.Context, contexts []models.AccountContext, vmID string, report *models.Report) {
	bindings := r.locator.Locate(ctx, contexts, vmID)
	if len(bindings) == 0 {
		r.logger.Infow("vm not found in any account context", "vm", vmID)
		report.AppendNotFound(vmID)
		return
	}

	for _, binding := range bindings {
		r.processDisks(ctx, binding, report)
	}
}

func (r *Runner) processDisks(ctx context.Context, binding Binding, report *models.Report) {
	vm := binding.VM

	// A VM without a resource group reference cannot be snapshotted;
	// record it explicitly so the VM never vanishes from the report.
	if vm.ResourceGroup == "" {
		r.logger.Warnw("vm has no resource group reference", "vm", vm.Identifier, "context", vm.Context.ID)
		report.AppendSkipped(vm.Context.ID, vm.Identifier, "vm has no resource group reference")
		return
	}
	if len(vm.Disks) == 0 {
		r.logger.Warnw("vm has no named disks", "vm", vm.Identifier, "context", vm.Context.ID)
		report.AppendSkipped(vm.Context.ID, vm.Identifier, "vm has no named disks")
		return
	}

	target := vm.ResourceGroup
	if r.opts.SnapshotResourceGroup != "" {
		target = r.opts.SnapshotResourceGroup
	}

	for _, disk := range vm.Disks {
		name := naming.Compose(r.opts.Scheme, vm.Identifier, disk.Name, report.Ticket, r.opts.MaxNameLength)
		if naming.ExceedsLimit(name, r.opts.MaxNameLength) {
			r.logger.Warnw("composed name exceeds the provider limit",
				"name", name, "length", len(name), "max", r.opts.MaxNameLength)
		}

		req := models.SnapshotRequest{
			Name:          name,
			SourceDiskID:  disk.SourceID,
			Location:      vm.Location,
			ResourceGroup: target,
		}

		outcome := r.executor.Create(ctx, binding.Client, req)
		switch outcome.State {
		case models.SnapshotCreated:
			report.AppendSuccess(vm.Context.ID, vm.Identifier, disk.Name, name)
		case models.SnapshotFailed:
			r.logger.Errorw("snapshot creation failed",
				"vm", vm.Identifier, "disk", disk.Name, "error", outcome.Err)
			report.AppendFailure(vm.Context.ID, vm.Identifier, disk.Name, name, outcome.Err.Error())
		}
	}
}
