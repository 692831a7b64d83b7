// internal/config/normalize.go
package config

const (
	DefaultMaxSizeY   = 1024
	DefaultTimeoutMs  = 1000
	DefaultIntervalMs = 1000
)

// Normalize applies post-validation defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	mt := &cfg.MultiTrack

	if mt.MaxSizeY == nil {
		v := DefaultMaxSizeY
		mt.MaxSizeY = &v
	}

	if s := mt.Source; s != nil {
		if s.TimeoutMs == 0 {
			s.TimeoutMs = DefaultTimeoutMs
		}
		if s.IntervalMs == 0 {
			s.IntervalMs = DefaultIntervalMs
		}
	}

	if p := mt.Publish; p != nil {
		if p.TimeoutMs == 0 {
			p.TimeoutMs = DefaultTimeoutMs
		}
	}
}
