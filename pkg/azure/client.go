package azure

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v5"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/internal/models"
	srvErrors "github.com/vikasmahi-dev/azure-vm-snapshot-tool/pkg/errors"
)

// Client implements Provider on top of the ARM SDK. Per-subscription
// clients are built on activation; there is no mutable "active context"
// in the SDK, so activation means constructing the client set.
type Client struct {
	cred   azcore.TokenCredential
	opts   *arm.ClientOptions
	logger *zap.SugaredLogger
}

func NewClient(cred azcore.TokenCredential) *Client {
	return &Client{
		cred:   cred,
		logger: zap.S().Named("azure"),
	}
}

func (c *Client) ListAccountContexts(ctx context.Context) ([]models.AccountContext, error) {
	subs, err := armsubscriptions.NewClient(c.cred, c.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriptions client: %w", err)
	}

	var contexts []models.AccountContext
	pager := subs.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list subscriptions: %w", err)
		}
		for _, sub := range page.Value {
			if sub.SubscriptionID == nil {
				continue
			}
			id := *sub.SubscriptionID
			if !isCanonicalContextID(id) {
				c.logger.Debugw("dropping subscription with non-canonical id", "id", id)
				continue
			}
			account := models.AccountContext{ID: id}
			if sub.DisplayName != nil {
				account.Name = *sub.DisplayName
			}
			contexts = append(contexts, account)
		}
	}

	return contexts, nil
}

// isCanonicalContextID reports whether id is a canonical 8-4-4-4-12
// hexadecimal subscription id. uuid.Parse alone also accepts urn-prefixed,
// braced and undashed forms, so the length guard rejects those first.
func isCanonicalContextID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

func (c *Client) ActivateContext(ctx context.Context, account models.AccountContext) (ContextClient, error) {
	vms, err := armcompute.NewVirtualMachinesClient(account.ID, c.cred, c.opts)
	if err != nil {
		return nil, srvErrors.NewContextUnavailableError(account.ID, err)
	}
	snapshots, err := armcompute.NewSnapshotsClient(account.ID, c.cred, c.opts)
	if err != nil {
		return nil, srvErrors.NewContextUnavailableError(account.ID, err)
	}

	return &subscriptionClient{
		account:   account,
		vms:       vms,
		snapshots: snapshots,
		logger:    c.logger.With("context", account.ID),
	}, nil
}

// subscriptionClient is the activated client set for one subscription.
type subscriptionClient struct {
	account   models.AccountContext
	vms       *armcompute.VirtualMachinesClient
	snapshots *armcompute.SnapshotsClient
	logger    *zap.SugaredLogger
}

// GetVM resolves a VM by name across the whole subscription. ARM has no
// by-name lookup without a resource group, so this walks the list-all
// pager and matches case-insensitively, the way the portal search does.
func (s *subscriptionClient) GetVM(ctx context.Context, name string) (*models.ResolvedVM, error) {
	pager := s.vms.NewListAllPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, srvErrors.NewContextUnavailableError(s.account.ID, err)
		}
		for _, vm := range page.Value {
			if vm.Name == nil || !strings.EqualFold(*vm.Name, name) {
				continue
			}
			return s.resolve(name, vm), nil
		}
	}

	return nil, srvErrors.NewVMNotFoundError(name)
}

func (s *subscriptionClient) resolve(identifier string, vm *armcompute.VirtualMachine) *models.ResolvedVM {
	resolved := &models.ResolvedVM{
		Identifier: identifier,
		Context:    s.account,
		Disks:      collectDisks(vm),
	}
	if vm.ID != nil {
		resolved.ResourceGroup = resourceGroupFromID(*vm.ID)
	}
	if vm.Location != nil {
		resolved.Location = *vm.Location
	}
	return resolved
}

// collectDisks returns the OS disk (when present) followed by the data
// disks in provider-reported order. Descriptors without a name are dropped.
func collectDisks(vm *armcompute.VirtualMachine) []models.DiskDescriptor {
	if vm.Properties == nil || vm.Properties.StorageProfile == nil {
		return nil
	}
	profile := vm.Properties.StorageProfile

	var disks []models.DiskDescriptor
	if os := profile.OSDisk; os != nil && os.Name != nil && *os.Name != "" {
		d := models.DiskDescriptor{Name: *os.Name, Role: models.DiskRoleOS}
		if os.ManagedDisk != nil && os.ManagedDisk.ID != nil {
			d.SourceID = *os.ManagedDisk.ID
		}
		disks = append(disks, d)
	}
	for _, data := range profile.DataDisks {
		if data == nil || data.Name == nil || *data.Name == "" {
			continue
		}
		d := models.DiskDescriptor{Name: *data.Name, Role: models.DiskRoleData}
		if data.ManagedDisk != nil && data.ManagedDisk.ID != nil {
			d.SourceID = *data.ManagedDisk.ID
		}
		disks = append(disks, d)
	}
	return disks
}

func (s *subscriptionClient) CreateSnapshot(ctx context.Context, req models.SnapshotRequest) error {
	s.logger.Debugw("creating snapshot", "name", req.Name, "source", req.SourceDiskID, "resource_group", req.ResourceGroup)

	snapshot := armcompute.Snapshot{
		Location: to.Ptr(req.Location),
		Properties: &armcompute.SnapshotProperties{
			CreationData: &armcompute.CreationData{
				CreateOption:     to.Ptr(armcompute.DiskCreateOptionCopy),
				SourceResourceID: to.Ptr(req.SourceDiskID),
			},
		},
	}

	poller, err := s.snapshots.BeginCreateOrUpdate(ctx, req.ResourceGroup, req.Name, snapshot, nil)
	if err != nil {
		return srvErrors.NewProviderError(err)
	}
	if _, err := poller.PollUntilDone(ctx, nil); err != nil {
		return srvErrors.NewProviderError(err)
	}
	return nil
}

// resourceGroupFromID extracts the resource group segment from an ARM
// resource id. Returns "" when the id has no such segment.
func resourceGroupFromID(id string) string {
	parts := strings.Split(id, "/")
	for i := 0; i < len(parts)-1; i++ {
		if strings.EqualFold(parts[i], "resourceGroups") {
			return parts[i+1]
		}
	}
	return ""
}
