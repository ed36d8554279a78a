package services_test

import (
	"context"
	"errors"
	"strings"

	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/internal/models"
	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/pkg/azure"
	srvErrors "github.com/vikasmahi-dev/azure-vm-snapshot-tool/pkg/errors"
)

// fakeContext implements azure.ContextClient for one account context.
type fakeContext struct {
	account     models.AccountContext
	vms         map[string]*models.ResolvedVM // keyed by lowercase name
	snapshotErr map[string]error              // per snapshot name
	created     []models.SnapshotRequest
}

func newFakeContext(account models.AccountContext) *fakeContext {
	return &fakeContext{
		account:     account,
		vms:         make(map[string]*models.ResolvedVM),
		snapshotErr: make(map[string]error),
	}
}

func (f *fakeContext) withVM(vm models.ResolvedVM) *fakeContext {
	vm.Context = f.account
	f.vms[strings.ToLower(vm.Identifier)] = &vm
	return f
}

func (f *fakeContext) withSnapshotError(name, msg string) *fakeContext {
	f.snapshotErr[name] = srvErrors.NewProviderError(errors.New(msg))
	return f
}

func (f *fakeContext) GetVM(_ context.Context, name string) (*models.ResolvedVM, error) {
	if vm, ok := f.vms[strings.ToLower(name)]; ok {
		resolved := *vm
		resolved.Identifier = name
		return &resolved, nil
	}
	return nil, srvErrors.NewVMNotFoundError(name)
}

func (f *fakeContext) CreateSnapshot(_ context.Context, req models.SnapshotRequest) error {
	if err, ok := f.snapshotErr[req.Name]; ok {
		return err
	}
	f.created = append(f.created, req)
	return nil
}

// fakeProvider implements azure.Provider over in-memory contexts.
type fakeProvider struct {
	contexts    []models.AccountContext
	clients     map[string]*fakeContext
	activateErr map[string]error
	listErr     error
	activations []string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		clients:     make(map[string]*fakeContext),
		activateErr: make(map[string]error),
	}
}

func (f *fakeProvider) withContext(id string) *fakeContext {
	account := models.AccountContext{ID: id}
	f.contexts = append(f.contexts, account)
	client := newFakeContext(account)
	f.clients[id] = client
	return client
}

func (f *fakeProvider) withActivationError(id string, err error) *fakeProvider {
	f.activateErr[id] = err
	return f
}

func (f *fakeProvider) ListAccountContexts(context.Context) ([]models.AccountContext, error) {
	return f.contexts, f.listErr
}

func (f *fakeProvider) ActivateContext(_ context.Context, account models.AccountContext) (azure.ContextClient, error) {
	f.activations = append(f.activations, account.ID)
	if err, ok := f.activateErr[account.ID]; ok {
		return nil, srvErrors.NewContextUnavailableError(account.ID, err)
	}
	return f.clients[account.ID], nil
}
