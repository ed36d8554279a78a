// Package report materializes the run report: a timestamped workbook with
// one row per entry, plus the console summary printed at run end.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/internal/models"
)

const sheetName = "Report"

var columns = []string{
	"Timestamp",
	"AccountContext",
	"VM",
	"Disk",
	"SnapshotName",
	"Status",
	"Error",
	"Ticket",
}

// Write saves the report as an .xlsx workbook in folder and returns the
// file path. The destination is timestamped so reruns never overwrite a
// previous report.
func Write(report *models.Report, folder string) (string, error) {
	// Snapshots were already taken by the time this runs; a missing folder
	// must not cost the durable record.
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(folder, fmt.Sprintf("snapshot_report_%s.xlsx", time.Now().Format("20060102_150405")))

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			zap.S().Named("report").Warnw("closing workbook", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return "", err
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return "", err
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", err
	}
	if err := f.SetCellStyle(sheetName, "A1", "H1", style); err != nil {
		return "", err
	}

	for i, e := range report.Entries() {
		row := []interface{}{
			e.Timestamp.Format(time.RFC3339),
			e.ContextID,
			e.VMIdentifier,
			e.DiskName,
			e.SnapshotName,
			string(e.Status),
			e.ErrorMessage,
			e.TicketReference,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return "", err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}
