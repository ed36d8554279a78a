// Package vmlist reads the newline-delimited VM identifier input.
package vmlist

import (
	"errors"
	"os"
	"strings"

	srvErrors "github.com/vikasmahi-dev/azure-vm-snapshot-tool/pkg/errors"
)

var errEmpty = errors.New("no vm identifiers in input")

// Load reads VM identifiers from path, one per line. Identifiers are
// trimmed and blank lines dropped; duplicates are kept, each processed
// independently by the runner. A missing or unreadable file is a fatal
// VMListError, as is a file with no usable identifiers.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, srvErrors.NewVMListError(path, err)
	}

	var vms []string
	for _, line := range strings.Split(string(data), "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		vms = append(vms, name)
	}

	if len(vms) == 0 {
		return nil, srvErrors.NewVMListError(path, errEmpty)
	}
	return vms, nil
}
