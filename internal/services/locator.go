package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/internal/models"
	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/pkg/azure"
	srvErrors "github.com/vikasmahi-dev/azure-vm-snapshot-tool/pkg/errors"
)

// SearchPolicy selects how account contexts are searched for a VM.
type SearchPolicy string

const (
	// PolicyFirstMatch stops at the earliest context owning the VM; later
	// contexts are not searched even if they also contain it.
	PolicyFirstMatch SearchPolicy = "first-match"
	// PolicyExhaustive probes every context and processes the VM
	// independently wherever it is found. Supports disks split across
	// contexts.
	PolicyExhaustive SearchPolicy = "exhaustive"
)

func ParseSearchPolicy(s string) (SearchPolicy, error) {
	switch SearchPolicy(s) {
	case PolicyFirstMatch, PolicyExhaustive:
		return SearchPolicy(s), nil
	default:
		return "", fmt.Errorf("unknown search policy %q", s)
	}
}

// Binding is a located VM together with the activated client that found
// it, so disk operations run against the owning context.
type Binding struct {
	VM     *models.ResolvedVM
	Client azure.ContextClient
}

// Locator resolves VM identifiers to owning account contexts.
type Locator struct {
	provider azure.Provider
	policy   SearchPolicy
	logger   *zap.SugaredLogger
}

func NewLocator(provider azure.Provider, policy SearchPolicy) *Locator {
	return &Locator{
		provider: provider,
		policy:   policy,
		logger:   zap.S().Named("locator"),
	}
}

// Locate probes contexts in enumerator order. An empty result means the
// VM resolved nowhere; the caller records exactly one NotFound entry.
func (l *Locator) Locate(ctx context.Context, contexts []models.AccountContext, vmID string) []Binding {
	var found []Binding
	for _, account := range contexts {
		lookup, client := l.probe(ctx, account, vmID)
		switch lookup.State {
		case models.LookupFound:
			found = append(found, Binding{VM: lookup.VM, Client: client})
			if l.policy == PolicyFirstMatch {
				return found
			}
		case models.LookupContextUnavailable:
			l.logger.Warnw("skipping unavailable context", "context", account.ID, "vm", vmID, "error", lookup.Err)
		case models.LookupNotFoundHere:
			// absence in one context is silent by contract
		}
	}
	return found
}

// probe activates one context and fetches the VM, mapping both steps into
// a tagged Lookup instead of suppressing errors.
func (l *Locator) probe(ctx context.Context, account models.AccountContext, vmID string) (models.Lookup, azure.ContextClient) {
	client, err := l.provider.ActivateContext(ctx, account)
	if err != nil {
		return models.Lookup{State: models.LookupContextUnavailable, Err: err}, nil
	}

	vm, err := client.GetVM(ctx, vmID)
	if err != nil {
		if srvErrors.IsVMNotFoundError(err) {
			return models.Lookup{State: models.LookupNotFoundHere}, nil
		}
		return models.Lookup{State: models.LookupContextUnavailable, Err: err}, nil
	}

	return models.Lookup{State: models.LookupFound, VM: vm}, client
}
