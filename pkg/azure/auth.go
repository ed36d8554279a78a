package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	srvErrors "github.com/vikasmahi-dev/azure-vm-snapshot-tool/pkg/errors"
)

const armScope = "https://management.azure.com/.default"

// NewSession builds the ambient credential chain (environment, workload
// identity, managed identity, az cli) and proves it can mint an ARM token.
// Any failure here is fatal for the run.
func NewSession(ctx context.Context) (azcore.TokenCredential, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, srvErrors.NewAuthenticationError(err)
	}

	if _, err := cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{armScope}}); err != nil {
		return nil, srvErrors.NewAuthenticationError(err)
	}

	return cred, nil
}
