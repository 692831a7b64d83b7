// internal/config/config.go
package config

type Config struct {
	MultiTrack MultiTrackConfig `yaml:"multitrack"`
}

type MultiTrackConfig struct {
	MaxSizeY *int           `yaml:"max_size_y"` // nil = default, 0 is a valid sensor height
	Tracks   TracksConfig   `yaml:"tracks"`
	Refine   RefineConfig   `yaml:"refine"`
	Source   *SourceConfig  `yaml:"source"`
	Publish  *PublishConfig `yaml:"publish"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ---- INITIAL USER ARRAYS ----

type TracksConfig struct {
	Start []int32 `yaml:"start"`
	End   []int32 `yaml:"end"`
	Bin   []int32 `yaml:"bin"`
}

// ---- STRICTER CONSTRAINTS ----

type RefineConfig struct {
	MaxBinning    int  `yaml:"max_binning"` // 0 = off
	UniformHeight bool `yaml:"uniform_height"`
}

// ---- ARRAY GEOMETRY ----

// ArrayBlock is one array in holding registers:
// count at Address, values at Address+1 .. Address+Capacity.
type ArrayBlock struct {
	Address  uint16 `yaml:"address"`
	Capacity uint16 `yaml:"capacity"`
}

// ---- SOURCE (user arrays read from a device) ----

type SourceConfig struct {
	Endpoint   string `yaml:"endpoint"`
	UnitID     uint8  `yaml:"unit_id"`
	TimeoutMs  int    `yaml:"timeout_ms"`
	IntervalMs int    `yaml:"interval_ms"`

	Start ArrayBlock `yaml:"start"`
	End   ArrayBlock `yaml:"end"`
	Bin   ArrayBlock `yaml:"bin"`
}

// ---- PUBLISH (validated arrays written to a target) ----

type PublishConfig struct {
	Endpoint  string `yaml:"endpoint"`
	UnitID    uint8  `yaml:"unit_id"`
	TimeoutMs int    `yaml:"timeout_ms"`

	Start ArrayBlock `yaml:"start"`
	End   ArrayBlock `yaml:"end"`
	Bin   ArrayBlock `yaml:"bin"`

	// Validation status block (optional, opt-in)
	StatusAddress *uint16 `yaml:"status_address"`
}

// ---- METRICS ----

type MetricsConfig struct {
	Listen string `yaml:"listen"` // empty = disabled
}
