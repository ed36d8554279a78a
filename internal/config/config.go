// Package config holds the runtime configuration of the snapshot tool.
// Defaults come from struct tags; flags and SNAPTOOL_* environment
// variables are bound on top of them by cmd.
package config

import (
	"fmt"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

type Run struct {
	// VMListFile is the newline-delimited VM identifier input. Required.
	VMListFile string `validate:"required"`
	// Ticket is the change/incident reference embedded verbatim (after
	// trimming) into every snapshot name of the run. Required.
	Ticket string `validate:"required"`
	// SearchPolicy selects how contexts are searched per VM.
	SearchPolicy string `default:"first-match" validate:"oneof=first-match exhaustive"`
	// NamingScheme selects the snapshot name composition scheme.
	NamingScheme string `default:"vm-disk" validate:"oneof=vm-disk disk-only"`
	// MaxNameLength is the provider's snapshot-name budget. The tag
	// default mirrors naming.DefaultMaxLength.
	MaxNameLength int `default:"82" validate:"gt=0"`
	// SnapshotResourceGroup, when set, overrides where snapshots land.
	// Empty means the VM's own resource group.
	SnapshotResourceGroup string
}

type Report struct {
	// OutputFolder receives the timestamped report workbook.
	OutputFolder string `default:"." validate:"required"`
}

type Store struct {
	// DataFolder, when set, enables the duckdb run-history database at
	// {DataFolder}/history.db. Empty disables persistence.
	DataFolder string
}

type Log struct {
	Level string `default:"info" validate:"oneof=debug info warn error"`
}

type Configuration struct {
	Run    Run
	Report Report
	Store  Store
	Log    Log
}

func NewConfigurationWithOptionsAndDefaults() *Configuration {
	cfg := &Configuration{}
	if err := defaults.Set(cfg); err != nil {
		// Tags are static; a failure here is a programming error.
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return cfg
}

var validate = validator.New()

// Validate checks the field-level constraints. Cross-field rules live in
// cmd.validateConfiguration where they can produce flag-named messages.
func (c *Configuration) Validate() error {
	return validate.Struct(c)
}
