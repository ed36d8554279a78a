// Package naming derives deterministic, length-budgeted snapshot names.
// Composition is a pure function: identical inputs always yield the same
// name, with no randomness and no cross-run collision detection.
package naming

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Scheme selects how the truncation budget is applied. The two schemes are
// mutually exclusive configuration choices, never mixed within a run.
type Scheme string

const (
	// SchemeVMDisk composes "{vm}_{disk}_{ticket}". The base is truncated
	// to leave room for the ticket, but the final string is not re-clamped:
	// a ticket longer than the limit pushes the result over it. Known,
	// unguarded edge; see ExceedsLimit.
	SchemeVMDisk Scheme = "vm-disk"
	// SchemeDiskOnly composes "{disk}_{ticket}" and re-clamps the final
	// string to the maximum length as a last safety step.
	SchemeDiskOnly Scheme = "disk-only"
)

// DefaultMaxLength matches the provider's snapshot-name limit.
const DefaultMaxLength = 82

func ParseScheme(s string) (Scheme, error) {
	switch Scheme(s) {
	case SchemeVMDisk, SchemeDiskOnly:
		return Scheme(s), nil
	default:
		return "", fmt.Errorf("unknown naming scheme %q", s)
	}
}

// Compose builds the snapshot name for one disk.
func Compose(scheme Scheme, vmIdentifier, diskName, ticket string, maxLength int) string {
	ticket = strings.TrimSpace(ticket)

	var base string
	switch scheme {
	case SchemeDiskOnly:
		base = strings.TrimSpace(diskName)
	default:
		base = strings.TrimSpace(vmIdentifier + "_" + diskName)
	}

	// Reserve room for the ticket and its separator. Lengths are counted
	// in characters, not bytes, so multibyte names truncate cleanly.
	available := maxLength - (utf8.RuneCountInString(ticket) + 1)
	base = truncate(base, available)

	composed := base + "_" + ticket
	if scheme == SchemeDiskOnly {
		composed = truncate(composed, maxLength)
	}
	return composed
}

// truncate returns the first n characters of s.
func truncate(s string, n int) string {
	if n < 0 {
		n = 0
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// ExceedsLimit reports whether a composed name is over the configured
// maximum. Only possible under SchemeVMDisk; callers log it as a
// configuration risk rather than fixing the name.
func ExceedsLimit(name string, maxLength int) bool {
	return utf8.RuneCountInString(name) > maxLength
}
