// internal/config/validate_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

// helper to build a publish block quickly
func publish(startAddr, endAddr, binAddr, capacity uint16) *PublishConfig {
	return &PublishConfig{
		Endpoint: "ep1",
		UnitID:   1,
		Start:    ArrayBlock{Address: startAddr, Capacity: capacity},
		End:      ArrayBlock{Address: endAddr, Capacity: capacity},
		Bin:      ArrayBlock{Address: binAddr, Capacity: capacity},
	}
}

func u16(v uint16) *uint16 { return &v }

func intp(v int) *int { return &v }

// ---- tests ----

func TestValidate_Minimal(t *testing.T) {
	cfg := &Config{MultiTrack: MultiTrackConfig{MaxSizeY: intp(256)}}

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MaxSizeOutOfRange(t *testing.T) {
	for _, v := range []int{-1, 32768, 40000, 70000} {
		cfg := &Config{MultiTrack: MultiTrackConfig{MaxSizeY: intp(v)}}
		if err := Validate(cfg); err == nil {
			t.Fatalf("expected error for max_size_y=%d", v)
		}
	}
}

func TestValidate_MaxSizeBounds(t *testing.T) {
	for _, v := range []int{0, 32767} {
		cfg := &Config{MultiTrack: MultiTrackConfig{MaxSizeY: intp(v)}}
		if err := Validate(cfg); err != nil {
			t.Fatalf("max_size_y=%d: unexpected error: %v", v, err)
		}
	}
}

func TestValidate_TouchingBlocksAllowed(t *testing.T) {
	cfg := &Config{MultiTrack: MultiTrackConfig{
		Publish: publish(0, 17, 34, 16), // 0–16, 17–33, 34–50
	}}

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_OverlapDetected(t *testing.T) {
	cfg := &Config{MultiTrack: MultiTrackConfig{
		Publish: publish(0, 16, 100, 16), // 0–16 and 16–32 share register 16
	}}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected overlap error, got nil")
	}
}

func TestValidate_StatusOverlapDetected(t *testing.T) {
	p := publish(0, 100, 200, 16)
	p.StatusAddress = u16(210) // 210–217 inside bin 200–216

	cfg := &Config{MultiTrack: MultiTrackConfig{Publish: p}}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected status overlap error, got nil")
	}
}

func TestValidate_CapacityLimits(t *testing.T) {
	for _, capacity := range []uint16{0, MaxCapacity + 1} {
		cfg := &Config{MultiTrack: MultiTrackConfig{
			Source: &SourceConfig{
				Endpoint: "ep1",
				Start:    ArrayBlock{Address: 0, Capacity: capacity},
				End:      ArrayBlock{Address: 1000, Capacity: 4},
				Bin:      ArrayBlock{Address: 2000, Capacity: 4},
			},
		}}
		if err := Validate(cfg); err == nil {
			t.Fatalf("expected capacity error for %d", capacity)
		}
	}
}

func TestValidate_BlockPastRegisterSpace(t *testing.T) {
	cfg := &Config{MultiTrack: MultiTrackConfig{
		Publish: publish(0, 100, 65530, 16),
	}}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected register space error, got nil")
	}
}

func TestValidate_EndpointRequired(t *testing.T) {
	p := publish(0, 100, 200, 4)
	p.Endpoint = ""

	if err := Validate(&Config{MultiTrack: MultiTrackConfig{Publish: p}}); err == nil {
		t.Fatalf("expected endpoint error, got nil")
	}
	if err := Validate(&Config{MultiTrack: MultiTrackConfig{Source: &SourceConfig{}}}); err == nil {
		t.Fatalf("expected source endpoint error, got nil")
	}
}

func TestNormalize_Defaults(t *testing.T) {
	cfg := &Config{MultiTrack: MultiTrackConfig{
		Source:  &SourceConfig{Endpoint: "ep1"},
		Publish: &PublishConfig{Endpoint: "ep2", TimeoutMs: 250},
	}}

	Normalize(cfg)

	if v := cfg.MultiTrack.MaxSizeY; v == nil || *v != DefaultMaxSizeY {
		t.Fatalf("expected default max_size_y, got %v", v)
	}
	if cfg.MultiTrack.Source.TimeoutMs != DefaultTimeoutMs || cfg.MultiTrack.Source.IntervalMs != DefaultIntervalMs {
		t.Fatalf("source defaults not applied: %+v", cfg.MultiTrack.Source)
	}
	if cfg.MultiTrack.Publish.TimeoutMs != 250 {
		t.Fatalf("explicit timeout overwritten: %d", cfg.MultiTrack.Publish.TimeoutMs)
	}
}

func TestLoad_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "multitrack.yaml")
	doc := `
multitrack:
  max_size_y: 256
  tracks:
    start: [10, 40]
    end: [19, 59]
    bin: [10, 4]
  refine:
    max_binning: 8
  publish:
    endpoint: "127.0.0.1:1502"
    unit_id: 2
    start: { address: 0, capacity: 8 }
    end: { address: 10, capacity: 8 }
    bin: { address: 20, capacity: 8 }
    status_address: 30
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() err=%v", err)
	}

	mt := cfg.MultiTrack
	if mt.MaxSizeY == nil || *mt.MaxSizeY != 256 || len(mt.Tracks.Start) != 2 || mt.Tracks.Bin[1] != 4 {
		t.Fatalf("unexpected tracks: %+v", mt)
	}
	if mt.Publish == nil || mt.Publish.UnitID != 2 || mt.Publish.End.Address != 10 {
		t.Fatalf("unexpected publish block: %+v", mt.Publish)
	}
	if mt.Publish.StatusAddress == nil || *mt.Publish.StatusAddress != 30 {
		t.Fatalf("status_address not parsed")
	}
	if mt.Source != nil {
		t.Fatalf("source should be absent")
	}
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("multitrack:\n  max_sise_y: 10\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected unknown key error, got nil")
	}
}

func TestNormalize_ExplicitZeroRowsKept(t *testing.T) {
	cfg := &Config{MultiTrack: MultiTrackConfig{MaxSizeY: intp(0)}}

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Normalize(cfg)

	if v := cfg.MultiTrack.MaxSizeY; v == nil || *v != 0 {
		t.Fatalf("explicit max_size_y 0 overwritten: %v", v)
	}
}

func TestLoad_ZeroRowsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "multitrack.yaml")
	if err := os.WriteFile(path, []byte("multitrack:\n  max_size_y: 0\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	Normalize(cfg)

	if v := cfg.MultiTrack.MaxSizeY; v == nil || *v != 0 {
		t.Fatalf("expected max_size_y 0, got %v", v)
	}
}
