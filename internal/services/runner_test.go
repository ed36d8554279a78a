package services_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/internal/models"
	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/internal/services"
	srvErrors "github.com/vikasmahi-dev/azure-vm-snapshot-tool/pkg/errors"
	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/pkg/naming"
)

func defaultOptions() services.RunnerOptions {
	return services.RunnerOptions{
		Ticket:        "INC123456",
		Scheme:        naming.SchemeVMDisk,
		MaxNameLength: naming.DefaultMaxLength,
	}
}

var _ = Describe("Runner", func() {
	var (
		ctx      context.Context
		provider *fakeProvider
	)

	BeforeEach(func() {
		ctx = context.Background()
		provider = newFakeProvider()
	})

	It("should abort with NoValidContexts when no context is available", func() {
		runner := services.NewRunner(provider, services.PolicyFirstMatch, defaultOptions())

		report, err := runner.Run(ctx, []string{"web-vm-01"})
		Expect(err).To(HaveOccurred())
		Expect(srvErrors.IsNoValidContextsError(err)).To(BeTrue())
		Expect(report).To(BeNil())
	})

	It("should record one Success entry for a resolved single-disk VM", func() {
		client := provider.withContext(ctxA).withVM(testVM("web-vm-01"))
		runner := services.NewRunner(provider, services.PolicyFirstMatch, defaultOptions())

		report, err := runner.Run(ctx, []string{"web-vm-01"})
		Expect(err).ToNot(HaveOccurred())

		entries := report.Entries()
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].Status).To(Equal(models.StatusSuccess))
		Expect(entries[0].ContextID).To(Equal(ctxA))
		Expect(entries[0].VMIdentifier).To(Equal("web-vm-01"))
		Expect(entries[0].DiskName).To(Equal("web-vm-01-osdisk"))
		Expect(entries[0].SnapshotName).To(Equal("web-vm-01_web-vm-01-osdisk_INC123456"))
		Expect(entries[0].TicketReference).To(Equal("INC123456"))

		Expect(client.created).To(HaveLen(1))
		Expect(client.created[0].ResourceGroup).To(Equal("rg-prod"))
		Expect(client.created[0].Location).To(Equal("westeurope"))
		Expect(client.created[0].SourceDiskID).To(Equal("/disks/web-vm-01-osdisk"))
	})

	It("should record exactly one NotFound entry for an unresolved VM", func() {
		provider.withContext(ctxA)
		runner := services.NewRunner(provider, services.PolicyFirstMatch, defaultOptions())

		report, err := runner.Run(ctx, []string{"ghost-vm"})
		Expect(err).ToNot(HaveOccurred())

		entries := report.Entries()
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].Status).To(Equal(models.StatusNotFound))
		Expect(entries[0].ContextID).To(Equal(models.FieldNotApplicable))
		Expect(entries[0].VMIdentifier).To(Equal("ghost-vm"))
		Expect(entries[0].DiskName).To(Equal(models.FieldNotApplicable))
		Expect(entries[0].SnapshotName).To(Equal(models.FieldNotApplicable))
	})

	It("should record a Failed entry with the provider message verbatim and keep going", func() {
		vm := testVM("db-vm")
		vm.Disks = append(vm.Disks, models.DiskDescriptor{
			Name: "db-vm-data-0", SourceID: "/disks/db-vm-data-0", Role: models.DiskRoleData,
		})
		client := provider.withContext(ctxA).withVM(vm)
		client.withSnapshotError("db-vm_db-vm-osdisk_INC123456", "quota exceeded for family standardDSv3")

		runner := services.NewRunner(provider, services.PolicyFirstMatch, defaultOptions())
		report, err := runner.Run(ctx, []string{"db-vm"})
		Expect(err).ToNot(HaveOccurred())

		entries := report.Entries()
		Expect(entries).To(HaveLen(2))
		Expect(entries[0].Status).To(Equal(models.StatusFailed))
		Expect(entries[0].ErrorMessage).To(Equal("quota exceeded for family standardDSv3"))
		// the second disk is still attempted
		Expect(entries[1].Status).To(Equal(models.StatusSuccess))
		Expect(entries[1].DiskName).To(Equal("db-vm-data-0"))
	})

	It("should not produce entries attributable to a later context under first-match", func() {
		provider.withContext(ctxA).withVM(testVM("web-vm-01"))
		other := provider.withContext(ctxB).withVM(testVM("web-vm-01"))

		runner := services.NewRunner(provider, services.PolicyFirstMatch, defaultOptions())
		report, err := runner.Run(ctx, []string{"web-vm-01"})
		Expect(err).ToNot(HaveOccurred())

		for _, e := range report.Entries() {
			Expect(e.ContextID).To(Equal(ctxA))
		}
		Expect(other.created).To(BeEmpty())
	})

	It("should snapshot in every owning context under the exhaustive policy", func() {
		provider.withContext(ctxA).withVM(testVM("split-vm"))
		provider.withContext(ctxB).withVM(testVM("split-vm"))

		runner := services.NewRunner(provider, services.PolicyExhaustive, defaultOptions())
		report, err := runner.Run(ctx, []string{"split-vm"})
		Expect(err).ToNot(HaveOccurred())

		entries := report.Entries()
		Expect(entries).To(HaveLen(2))
		Expect(entries[0].ContextID).To(Equal(ctxA))
		Expect(entries[1].ContextID).To(Equal(ctxB))
	})

	It("should record a Skipped entry for a VM without a resource group", func() {
		vm := testVM("orphan-vm")
		vm.ResourceGroup = ""
		provider.withContext(ctxA).withVM(vm)

		runner := services.NewRunner(provider, services.PolicyFirstMatch, defaultOptions())
		report, err := runner.Run(ctx, []string{"orphan-vm"})
		Expect(err).ToNot(HaveOccurred())

		entries := report.Entries()
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].Status).To(Equal(models.StatusSkipped))
		Expect(entries[0].ContextID).To(Equal(ctxA))
	})

	It("should record a Skipped entry for a VM without named disks", func() {
		vm := testVM("diskless-vm")
		vm.Disks = nil
		provider.withContext(ctxA).withVM(vm)

		runner := services.NewRunner(provider, services.PolicyFirstMatch, defaultOptions())
		report, err := runner.Run(ctx, []string{"diskless-vm"})
		Expect(err).ToNot(HaveOccurred())

		Expect(report.Entries()).To(HaveLen(1))
		Expect(report.Entries()[0].Status).To(Equal(models.StatusSkipped))
	})

	It("should honor the snapshot resource group override", func() {
		client := provider.withContext(ctxA).withVM(testVM("web-vm-01"))

		opts := defaultOptions()
		opts.SnapshotResourceGroup = "rg-snapshots"
		runner := services.NewRunner(provider, services.PolicyFirstMatch, opts)

		_, err := runner.Run(ctx, []string{"web-vm-01"})
		Expect(err).ToNot(HaveOccurred())
		Expect(client.created).To(HaveLen(1))
		Expect(client.created[0].ResourceGroup).To(Equal("rg-snapshots"))
	})

	It("should yield one entry per reachable disk or exactly one per unresolved VM", func() {
		multi := testVM("multi-vm")
		multi.Disks = append(multi.Disks,
			models.DiskDescriptor{Name: "multi-vm-data-0", SourceID: "/disks/d0", Role: models.DiskRoleData},
			models.DiskDescriptor{Name: "multi-vm-data-1", SourceID: "/disks/d1", Role: models.DiskRoleData},
		)
		provider.withContext(ctxA).withVM(multi)
		provider.clients[ctxA].withVM(testVM("web-vm-01"))

		runner := services.NewRunner(provider, services.PolicyFirstMatch, defaultOptions())
		report, err := runner.Run(ctx, []string{"multi-vm", "ghost-vm", "web-vm-01"})
		Expect(err).ToNot(HaveOccurred())

		// 3 disks + 1 not found + 1 disk
		Expect(report.Entries()).To(HaveLen(5))

		summary := report.Summary()
		Expect(summary.Succeeded).To(Equal(4))
		Expect(summary.NotFound).To(Equal(1))
		Expect(summary.Total()).To(Equal(len(report.Entries())))
	})

	It("should process duplicate identifiers independently", func() {
		provider.withContext(ctxA).withVM(testVM("web-vm-01"))

		runner := services.NewRunner(provider, services.PolicyFirstMatch, defaultOptions())
		report, err := runner.Run(ctx, []string{"web-vm-01", "web-vm-01"})
		Expect(err).ToNot(HaveOccurred())
		Expect(report.Entries()).To(HaveLen(2))
	})

	It("should trim the ticket before composing names", func() {
		provider.withContext(ctxA).withVM(testVM("web-vm-01"))

		opts := defaultOptions()
		opts.Ticket = "  INC123456  "
		runner := services.NewRunner(provider, services.PolicyFirstMatch, opts)

		report, err := runner.Run(ctx, []string{"web-vm-01"})
		Expect(err).ToNot(HaveOccurred())
		Expect(report.Entries()[0].SnapshotName).To(Equal("web-vm-01_web-vm-01-osdisk_INC123456"))
		Expect(report.Entries()[0].TicketReference).To(Equal("INC123456"))
	})
})
