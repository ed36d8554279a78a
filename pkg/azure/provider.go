package azure

import (
	"context"

	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/internal/models"
)

// Provider is the cloud surface the snapshot engine consumes. The services
// layer depends on this contract only; the armcompute-backed implementation
// lives in this package and fakes live next to the service tests.
type Provider interface {
	// ListAccountContexts enumerates the subscriptions visible to the
	// ambient session, filtered to canonical UUID ids, in provider order.
	ListAccountContexts(ctx context.Context) ([]models.AccountContext, error)

	// ActivateContext builds the per-subscription client set. Failure is
	// the non-fatal ContextUnavailable case: the caller logs and moves on.
	ActivateContext(ctx context.Context, account models.AccountContext) (ContextClient, error)
}

// ContextClient operates within one activated account context.
type ContextClient interface {
	// GetVM resolves a VM by name within the context. Returns a
	// VMNotFoundError when the context does not own the VM.
	GetVM(ctx context.Context, name string) (*models.ResolvedVM, error)

	// CreateSnapshot issues one copy-from-source-disk creation call and
	// blocks until the provider reports completion. On success a real
	// billable resource exists. Failures carry the provider's message
	// verbatim as a ProviderError.
	CreateSnapshot(ctx context.Context, req models.SnapshotRequest) error
}
