package ivfgo

import (
	"github.com/hupe1980/ivfgo/meta"
	"github.com/hupe1980/ivfgo/planner"
)

// Bounds and defaults for the lists index option and the probe settings.
const (
	MinLists     = 1
	MaxLists     = 32768
	DefaultLists = 100

	// DefaultProbes is the default floor on lists visited per scan.
	DefaultProbes = 1

	// UnboundedMaxProbes disables the upper clamp on adaptively estimated
	// probes.
	UnboundedMaxProbes = -1

	// DefaultStreaming is the default for limit-aware probe estimation.
	DefaultStreaming = false
)

// AccessMethod is the planner-facing entry point of the IVFFlat access
// method. It is safe for concurrent use; every estimation call reads a
// consistent snapshot of the settings and opens its own metadata handle.
type AccessMethod struct {
	metadata meta.Provider
	generic  planner.GenericCostEstimator
	settings *SettingsVar
	logger   *Logger
}

// New creates an AccessMethod reading index metadata from provider.
func New(provider meta.Provider, optFns ...Option) (*AccessMethod, error) {
	if provider == nil {
		return nil, ErrNoMetadataProvider
	}

	o := applyOptions(optFns)

	return &AccessMethod{
		metadata: provider,
		generic:  o.generic,
		settings: o.settings,
		logger:   o.logger,
	}, nil
}

// Settings returns the session-scoped probe settings.
func (am *AccessMethod) Settings() *SettingsVar {
	return am.settings
}

// Validate checks catalog entries for the given operator class.
func (am *AccessMethod) Validate(opClass string) bool {
	return true
}
