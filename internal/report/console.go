package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/internal/models"
)

// PrintSummary writes the per-status counts to w.
func PrintSummary(w io.Writer, summary models.RunSummary) {
	fmt.Fprintln(w, "Run summary:")
	color.New(color.FgGreen).Fprintf(w, "  Success:  %d\n", summary.Succeeded)
	color.New(color.FgRed).Fprintf(w, "  Failed:   %d\n", summary.Failed)
	color.New(color.FgYellow).Fprintf(w, "  NotFound: %d\n", summary.NotFound)
	if summary.Skipped > 0 {
		color.New(color.FgCyan).Fprintf(w, "  Skipped:  %d\n", summary.Skipped)
	}
}
