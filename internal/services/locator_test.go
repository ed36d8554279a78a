package services_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/internal/models"
	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/internal/services"
)

const (
	ctxA = "11111111-1111-1111-1111-111111111111"
	ctxB = "22222222-2222-2222-2222-222222222222"
	ctxC = "33333333-3333-3333-3333-333333333333"
)

func testVM(name string) models.ResolvedVM {
	return models.ResolvedVM{
		Identifier:    name,
		ResourceGroup: "rg-prod",
		Location:      "westeurope",
		Disks: []models.DiskDescriptor{
			{Name: name + "-osdisk", SourceID: "/disks/" + name + "-osdisk", Role: models.DiskRoleOS},
		},
	}
}

var _ = Describe("Locator", func() {
	var (
		ctx      context.Context
		provider *fakeProvider
	)

	BeforeEach(func() {
		ctx = context.Background()
		provider = newFakeProvider()
	})

	Context("first-match policy", func() {
		It("should bind the VM to the earliest enumerated context", func() {
			provider.withContext(ctxA).withVM(testVM("web-vm-01"))
			provider.withContext(ctxB).withVM(testVM("web-vm-01"))

			locator := services.NewLocator(provider, services.PolicyFirstMatch)
			bindings := locator.Locate(ctx, provider.contexts, "web-vm-01")

			Expect(bindings).To(HaveLen(1))
			Expect(bindings[0].VM.Context.ID).To(Equal(ctxA))
			// the second context is never probed after the first hit
			Expect(provider.activations).To(Equal([]string{ctxA}))
		})

		It("should keep searching past contexts that do not own the VM", func() {
			provider.withContext(ctxA)
			provider.withContext(ctxB).withVM(testVM("db-vm"))

			locator := services.NewLocator(provider, services.PolicyFirstMatch)
			bindings := locator.Locate(ctx, provider.contexts, "db-vm")

			Expect(bindings).To(HaveLen(1))
			Expect(bindings[0].VM.Context.ID).To(Equal(ctxB))
		})

		It("should skip a context that fails activation and continue", func() {
			provider.withContext(ctxA)
			provider.withActivationError(ctxA, errors.New("tenant unavailable"))
			provider.withContext(ctxB).withVM(testVM("db-vm"))

			locator := services.NewLocator(provider, services.PolicyFirstMatch)
			bindings := locator.Locate(ctx, provider.contexts, "db-vm")

			Expect(bindings).To(HaveLen(1))
			Expect(bindings[0].VM.Context.ID).To(Equal(ctxB))
		})

		It("should return no bindings when the VM resolves nowhere", func() {
			provider.withContext(ctxA)
			provider.withContext(ctxB)

			locator := services.NewLocator(provider, services.PolicyFirstMatch)
			Expect(locator.Locate(ctx, provider.contexts, "ghost-vm")).To(BeEmpty())
			// every context was searched before giving up
			Expect(provider.activations).To(Equal([]string{ctxA, ctxB}))
		})
	})

	Context("exhaustive policy", func() {
		It("should process the VM independently wherever it is found", func() {
			provider.withContext(ctxA).withVM(testVM("split-vm"))
			provider.withContext(ctxB)
			provider.withContext(ctxC).withVM(testVM("split-vm"))

			locator := services.NewLocator(provider, services.PolicyExhaustive)
			bindings := locator.Locate(ctx, provider.contexts, "split-vm")

			Expect(bindings).To(HaveLen(2))
			Expect(bindings[0].VM.Context.ID).To(Equal(ctxA))
			Expect(bindings[1].VM.Context.ID).To(Equal(ctxC))
			Expect(provider.activations).To(Equal([]string{ctxA, ctxB, ctxC}))
		})
	})
})

var _ = Describe("ParseSearchPolicy", func() {
	It("should accept both policies", func() {
		for _, p := range []string{"first-match", "exhaustive"} {
			policy, err := services.ParseSearchPolicy(p)
			Expect(err).ToNot(HaveOccurred())
			Expect(string(policy)).To(Equal(p))
		}
	})

	It("should reject unknown policies", func() {
		_, err := services.ParseSearchPolicy("random")
		Expect(err).To(HaveOccurred())
	})
})
