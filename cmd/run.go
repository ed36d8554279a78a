package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/internal/config"
	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/internal/models"
	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/internal/report"
	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/internal/services"
	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/internal/store"
	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/internal/store/migrations"
	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/pkg/azure"
	srvErrors "github.com/vikasmahi-dev/azure-vm-snapshot-tool/pkg/errors"
	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/pkg/naming"
	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/pkg/vmlist"
)

const (
	envPrefix       = "SNAPTOOL"
	historyFileName = "history.db"
)

func NewRunCommand(cfg *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "run",
		Short:        "Snapshot the disks of the listed VMs across all visible subscriptions",
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			viper.AutomaticEnv()
			viper.SetEnvPrefix(envPrefix)
			viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			cobraflags.PresetRequiredFlags(envPrefix, make(map[*pflag.Flag]bool), cmd)

			return validateConfiguration(cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Run.VMListFile, "vm-list", cfg.Run.VMListFile, "path to the newline-delimited VM identifier list")
	flags.StringVar(&cfg.Run.Ticket, "ticket", cfg.Run.Ticket, "ticket reference embedded into every snapshot name")
	flags.StringVar(&cfg.Run.SearchPolicy, "search-policy", cfg.Run.SearchPolicy, "context search policy (first-match|exhaustive)")
	flags.StringVar(&cfg.Run.NamingScheme, "naming-scheme", cfg.Run.NamingScheme, "snapshot naming scheme (vm-disk|disk-only)")
	flags.IntVar(&cfg.Run.MaxNameLength, "max-name-length", cfg.Run.MaxNameLength, "snapshot name length budget")
	flags.StringVar(&cfg.Run.SnapshotResourceGroup, "snapshot-resource-group", cfg.Run.SnapshotResourceGroup, "resource group to create snapshots in (default: the VM's own)")
	flags.StringVar(&cfg.Report.OutputFolder, "output-folder", cfg.Report.OutputFolder, "folder for the timestamped report workbook")
	flags.StringVar(&cfg.Store.DataFolder, "data-folder", cfg.Store.DataFolder, "folder for the run-history database (empty disables history)")
	flags.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level (debug|info|warn|error)")

	return cmd
}

func validateConfiguration(cfg *config.Configuration) error {
	if strings.TrimSpace(cfg.Run.VMListFile) == "" {
		return srvErrors.NewVMListError("", fmt.Errorf("vm-list cannot be empty"))
	}
	if strings.TrimSpace(cfg.Run.Ticket) == "" {
		return fmt.Errorf("ticket cannot be empty")
	}
	if _, err := services.ParseSearchPolicy(cfg.Run.SearchPolicy); err != nil {
		return fmt.Errorf("invalid search-policy: %w", err)
	}
	if _, err := naming.ParseScheme(cfg.Run.NamingScheme); err != nil {
		return fmt.Errorf("invalid naming-scheme: %w", err)
	}
	if cfg.Run.MaxNameLength <= 0 {
		return fmt.Errorf("invalid max-name-length: %d", cfg.Run.MaxNameLength)
	}

	return cfg.Validate()
}

func run(cmd *cobra.Command, cfg *config.Configuration) error {
	if err := setupLogger(cfg.Log.Level); err != nil {
		return err
	}
	defer func() { _ = zap.S().Sync() }()
	logger := zap.S().Named("run")

	ctx := cmd.Context()

	vms, err := vmlist.Load(cfg.Run.VMListFile)
	if err != nil {
		return err
	}
	logger.Infow("vm list loaded", "path", cfg.Run.VMListFile, "count", len(vms))

	cred, err := azure.NewSession(ctx)
	if err != nil {
		return err
	}

	// Both parse calls already passed validation.
	policy, _ := services.ParseSearchPolicy(cfg.Run.SearchPolicy)
	scheme, _ := naming.ParseScheme(cfg.Run.NamingScheme)

	runner := services.NewRunner(azure.NewClient(cred), policy, services.RunnerOptions{
		Ticket:                cfg.Run.Ticket,
		Scheme:                scheme,
		MaxNameLength:         cfg.Run.MaxNameLength,
		SnapshotResourceGroup: cfg.Run.SnapshotResourceGroup,
	})

	startedAt := time.Now()
	rep, err := runner.Run(ctx, vms)
	if err != nil {
		return err
	}
	finishedAt := time.Now()

	path, err := report.Write(rep, cfg.Report.OutputFolder)
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	logger.Infow("report written", "path", path)

	if cfg.Store.DataFolder != "" {
		if err := persistRun(ctx, cfg, rep, startedAt, finishedAt); err != nil {
			// History is an audit supplement; losing it never fails the run.
			logger.Errorw("failed to persist run history", "error", err)
		}
	}

	report.PrintSummary(cmd.OutOrStdout(), rep.Summary())
	return nil
}

func persistRun(ctx context.Context, cfg *config.Configuration, rep *models.Report, startedAt, finishedAt time.Time) error {
	if err := os.MkdirAll(cfg.Store.DataFolder, 0o755); err != nil {
		return err
	}

	db, err := store.NewDB(filepath.Join(cfg.Store.DataFolder, historyFileName))
	if err != nil {
		return err
	}
	st := store.NewStore(db)
	defer st.Close()

	if err := migrations.Run(ctx, db); err != nil {
		return err
	}

	return st.Runs().SaveRun(ctx, models.RunRecord{
		ID:           uuid.New(),
		Ticket:       rep.Ticket,
		SearchPolicy: cfg.Run.SearchPolicy,
		NamingScheme: cfg.Run.NamingScheme,
		StartedAt:    startedAt,
		FinishedAt:   finishedAt,
		Summary:      rep.Summary(),
	}, rep.Entries())
}

func setupLogger(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log-level: %w", err)
	}

	logCfg := zap.NewProductionConfig()
	logCfg.Level = zap.NewAtomicLevelAt(lvl)
	logCfg.Encoding = "console"
	logCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := logCfg.Build()
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	return nil
}
