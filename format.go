package nuformats

import (
	"github.com/gaetschwartz/nuformats/internal/registry"
	"github.com/gaetschwartz/nuformats/internal/types"
)

// Format is an alias to types.Format.
// Re-exporting from internal/types to maintain public API.
type Format = types.Format

// Policy is an alias to types.Policy.
type Policy = types.Policy

// DuplicateKeysPolicy is an alias to types.DuplicateKeys.
type DuplicateKeysPolicy = types.DuplicateKeys

// Re-export all format constants.
const (
	FormatUnknown = types.FormatUnknown
	FormatEML     = types.FormatEML
	FormatICS     = types.FormatICS
	FormatINI     = types.FormatINI
	FormatVCF     = types.FormatVCF
)

// Re-export duplicate key policies.
const (
	LastWriteWins = types.LastWriteWins
	PromoteToList = types.PromoteToList
)

// DetectFormat is a wrapper around types.DetectFormat.
// Maintains the public API while delegating to internal implementation.
func DetectFormat(text, path string) (Format, error) {
	return types.DetectFormat(text, path)
}

// ParseFormat maps a name such as "vcf" or ".ical" to its Format.
func ParseFormat(name string) (Format, error) {
	return types.ParseFormat(name)
}

// Formats returns every format with a registered parser.
func Formats() []Format {
	return registry.Formats()
}

// PolicyFor returns the parsing policy of format.
func PolicyFor(format Format) (Policy, bool) {
	p := registry.Get(format)
	if p == nil {
		return Policy{}, false
	}
	return p.Policy(), true
}
