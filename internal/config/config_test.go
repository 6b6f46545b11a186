package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad focus cycle", func(c *Config) { c.WindowFocusCycle = "sometimes" }},
		{"bad layout", func(c *Config) { c.DefaultLayout = "stacking" }},
		{"ratio too small", func(c *Config) { c.SplitRatio = 0.05 }},
		{"ratio too large", func(c *Config) { c.SplitRatio = 0.95 }},
		{"negative padding step", func(c *Config) { c.PaddingStep = -1 }},
		{"negative gap step", func(c *Config) { c.GapStep = -1 }},
		{"negative border width", func(c *Config) { c.PreselectWidth = -1 }},
		{"negative offset", func(c *Config) { c.Offset.Top = -5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestLoadFromPath_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default().SplitRatio, cfg.SplitRatio)
	require.Equal(t, Default().DefaultLayout, cfg.DefaultLayout)
}

func TestLoadFromPath_AppliesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
window_focus_cycle: monitor
bsp_split_ratio: 0.6
default_layout: monocle
offset:
  top: 30
  gap: 12
hotkeys:
  - key: mod4-h
    command: focus west
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, FocusCycleMonitor, cfg.WindowFocusCycle)
	require.Equal(t, 0.6, cfg.SplitRatio)
	require.Equal(t, LayoutMonocle, cfg.DefaultLayout)
	require.Equal(t, 30.0, cfg.Offset.Top)
	require.Equal(t, 12.0, cfg.Offset.Gap)
	require.Len(t, cfg.Hotkeys, 1)
	require.Equal(t, "focus west", cfg.Hotkeys[0].Command)

	// Keys absent from the file keep their defaults.
	require.Equal(t, Default().PaddingStep, cfg.PaddingStep)
}

func TestLoadFromPath_RejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not_a_variable: 1\n"), 0644))

	_, err := LoadFromPath(path)
	require.Error(t, err)
}

func TestLoadFromPath_RejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bsp_split_ratio: 0.99\n"), 0644))

	_, err := LoadFromPath(path)
	require.Error(t, err)
}

func TestSaveToPathRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.SplitRatio = 0.4
	cfg.Hotkeys = []HotkeyConfig{{Key: "mod4-f", Command: "toggle float"}}
	require.NoError(t, cfg.SaveToPath(path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, 0.4, loaded.SplitRatio)
	require.Equal(t, cfg.Hotkeys, loaded.Hotkeys)
}

func TestInsertionPointAccessors(t *testing.T) {
	cfg := Default()
	require.Equal(t, uint32(0), cfg.GetInsertionPoint())

	cfg.SetInsertionPoint(42)
	require.Equal(t, uint32(42), cfg.GetInsertionPoint())
}
