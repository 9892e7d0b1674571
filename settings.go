package ivfgo

import "sync/atomic"

// Settings are the session-scoped probe tunables.
type Settings struct {
	// Probes is the floor on lists visited per scan, in
	// [MinLists, MaxLists].
	Probes int

	// MaxProbes clamps adaptively estimated probes. Either
	// UnboundedMaxProbes or a value in [MinLists, MaxLists].
	MaxProbes int

	// Streaming enables limit-aware probe estimation.
	Streaming bool
}

// DefaultSettings returns the defaults: one probe, unbounded max, streaming
// off.
func DefaultSettings() Settings {
	return Settings{
		Probes:    DefaultProbes,
		MaxProbes: UnboundedMaxProbes,
		Streaming: DefaultStreaming,
	}
}

// Validate range-checks the settings.
func (s Settings) Validate() error {
	if s.Probes < MinLists || s.Probes > MaxLists {
		return &OutOfRangeError{Name: "probes", Value: s.Probes, Min: MinLists, Max: MaxLists}
	}
	if s.MaxProbes != UnboundedMaxProbes && (s.MaxProbes < MinLists || s.MaxProbes > MaxLists) {
		return &OutOfRangeError{Name: "max_probes", Value: s.MaxProbes, Min: MinLists, Max: MaxLists}
	}
	return nil
}

// SettingsVar holds Settings for one session. Writers validate before the
// swap, so estimation never sees an out-of-range value, and every Load
// returns one consistent snapshot even while another session goroutine
// updates a field.
type SettingsVar struct {
	v atomic.Pointer[Settings]
}

// NewSettingsVar creates a holder initialized with DefaultSettings.
func NewSettingsVar() *SettingsVar {
	sv := &SettingsVar{}
	s := DefaultSettings()
	sv.v.Store(&s)
	return sv
}

// Load returns the current settings snapshot.
func (sv *SettingsVar) Load() Settings {
	return *sv.v.Load()
}

// Store validates and installs a full settings snapshot.
func (sv *SettingsVar) Store(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	sv.v.Store(&s)
	return nil
}

// SetProbes updates the probe floor.
func (sv *SettingsVar) SetProbes(n int) error {
	return sv.update(func(s *Settings) { s.Probes = n })
}

// SetMaxProbes updates the probe clamp. Pass UnboundedMaxProbes to disable.
func (sv *SettingsVar) SetMaxProbes(n int) error {
	return sv.update(func(s *Settings) { s.MaxProbes = n })
}

// SetStreaming toggles limit-aware probe estimation.
func (sv *SettingsVar) SetStreaming(on bool) error {
	return sv.update(func(s *Settings) { s.Streaming = on })
}

func (sv *SettingsVar) update(mutate func(*Settings)) error {
	for {
		old := sv.v.Load()
		next := *old
		mutate(&next)
		if err := next.Validate(); err != nil {
			return err
		}
		if sv.v.CompareAndSwap(old, &next) {
			return nil
		}
	}
}
