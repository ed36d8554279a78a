package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/internal/config"
	srvErrors "github.com/vikasmahi-dev/azure-vm-snapshot-tool/pkg/errors"
)

// Exit codes. Per-disk failures never affect the exit status; only the
// fatal pre-report conditions map to distinguished codes.
const (
	ExitOK              = 0
	ExitError           = 1
	ExitMissingVMList   = 2
	ExitAuthentication  = 3
	ExitNoValidContexts = 4
)

func NewRootCommand() *cobra.Command {
	cfg := config.NewConfigurationWithOptionsAndDefaults()

	root := &cobra.Command{
		Use:           "azure-vm-snapshot-tool",
		Short:         "Create Azure managed-disk snapshots for a list of VMs across subscriptions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(NewRunCommand(cfg))

	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitCode(err)
	}
	return ExitOK
}

func exitCode(err error) int {
	switch {
	case srvErrors.IsVMListError(err):
		return ExitMissingVMList
	case srvErrors.IsAuthenticationError(err):
		return ExitAuthentication
	case srvErrors.IsNoValidContextsError(err):
		return ExitNoValidContexts
	default:
		return ExitError
	}
}
