package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultsValidate(t *testing.T) {
	s := Defaults()
	if err := s.Validate(); err != nil {
		t.Fatalf("Defaults().Validate() unexpected error: %v", err)
	}
}

func TestDefaultsMapUsesCanonicalKeys(t *testing.T) {
	m, err := DefaultsMap()
	if err != nil {
		t.Fatalf("DefaultsMap() error: %v", err)
	}
	for _, key := range []string{"gestureDetectionMode", "sysUiEnableNextPrevGestures", "sysUiEnableAppSwitchGestures", "gestureBorderSize"} {
		if _, ok := m[key]; !ok {
			t.Errorf("DefaultsMap() missing key %q", key)
		}
	}
}

func TestFromSnapshotOverridesDefaults(t *testing.T) {
	s, err := FromSnapshot(map[string]interface{}{
		"gestureDetectionMode":        2,
		"sysUiEnableNextPrevGestures": false,
		"gestureTriggerDistance":      40,
	})
	if err != nil {
		t.Fatalf("FromSnapshot() error: %v", err)
	}
	if s.GestureDetectionMode != DetectFluid {
		t.Errorf("GestureDetectionMode = %d, want %d", s.GestureDetectionMode, DetectFluid)
	}
	if s.EnableNextPrevGestures {
		t.Error("EnableNextPrevGestures = true, want false")
	}
	if s.GestureTriggerDistance != 40 {
		t.Errorf("GestureTriggerDistance = %v, want 40", s.GestureTriggerDistance)
	}
	// untouched keys keep their defaults
	if s.FlickMinDelta != 25 {
		t.Errorf("FlickMinDelta = %v, want 25", s.FlickMinDelta)
	}
}

func TestFromSnapshotRejectsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		snapshot map[string]interface{}
		wantErr  string
	}{
		{"bad mode", map[string]interface{}{"gestureDetectionMode": 7}, "gestureDetectionMode"},
		{"zero screen", map[string]interface{}{"screenWidth": 0}, "screen size"},
		{"flick max below min", map[string]interface{}{"flickMaxDelta": 10}, "flick"},
		{"keyboard distance below normal", map[string]interface{}{"gestureTriggerDistanceKeyboard": 5}, "gestureTriggerDistanceKeyboard"},
		{"no layers", map[string]interface{}{"directRenderingLayers": 0}, "directRenderingLayers"},
		{"pinch threshold", map[string]interface{}{"pinchThreshold": 1.5}, "pinchThreshold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromSnapshot(tt.snapshot)
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadFromBytes(t *testing.T) {
	yamlData := []byte(`
gestureDetectionMode: 1
screenWidth: 1280
screenHeight: 800
`)
	s, err := LoadFromBytes(yamlData, "yaml")
	if err != nil {
		t.Fatalf("LoadFromBytes(yaml) error: %v", err)
	}
	if s.GestureDetectionMode != DetectSlide || s.ScreenWidth != 1280 || s.ScreenHeight != 800 {
		t.Errorf("unexpected settings: mode=%d screen=%vx%v", s.GestureDetectionMode, s.ScreenWidth, s.ScreenHeight)
	}

	jsonData := []byte(`{"gestureBorderSize": 14}`)
	s, err = LoadFromBytes(jsonData, "json")
	if err != nil {
		t.Fatalf("LoadFromBytes(json) error: %v", err)
	}
	if s.GestureBorderSize != 14 {
		t.Errorf("GestureBorderSize = %v, want 14", s.GestureBorderSize)
	}

	if _, err := LoadFromBytes(jsonData, "ini"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestLoadFromBytesUnknownKeySuggests(t *testing.T) {
	_, err := LoadFromBytes([]byte("gestureBorderSise: 12\n"), "yaml")
	if err == nil {
		t.Fatal("expected unknown key error")
	}
	if !strings.Contains(err.Error(), `did you mean "gestureBorderSize"`) {
		t.Errorf("error %q lacks suggestion", err.Error())
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	if err := os.WriteFile(path, []byte("gestureDetectionMode: 2\ncardScale: 0.5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) error: %v", path, err)
	}
	if s.GestureDetectionMode != DetectFluid || s.CardScale != 0.5 {
		t.Errorf("unexpected settings: mode=%d cardScale=%v", s.GestureDetectionMode, s.CardScale)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for explicit missing path")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("CARDSHELL_GESTUREBORDERSIZE", "16")

	s, err := FromSnapshot(nil)
	if err != nil {
		t.Fatalf("FromSnapshot(nil) error: %v", err)
	}
	if s.GestureBorderSize != 16 {
		t.Errorf("GestureBorderSize = %v, want 16 from environment", s.GestureBorderSize)
	}
}

func TestTriggerDistance(t *testing.T) {
	s := Defaults()
	if got := s.TriggerDistance(false); got != s.GestureTriggerDistance {
		t.Errorf("TriggerDistance(false) = %v, want %v", got, s.GestureTriggerDistance)
	}
	if got := s.TriggerDistance(true); got != s.GestureTriggerDistanceKeyboard {
		t.Errorf("TriggerDistance(true) = %v, want %v", got, s.GestureTriggerDistanceKeyboard)
	}
}

func TestResolveSearchesDefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "" {
		t.Errorf("Resolve() with no file = %q, want empty", got)
	}

	dir := filepath.Join(home, DefaultConfigDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, DefaultConfigName+".json")
	if err := os.WriteFile(want, []byte(`{"placementMs": 120}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if got, _ := Resolve(""); got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
	if got, _ := Resolve("other.yaml"); got != "other.yaml" {
		t.Errorf("Resolve(other.yaml) = %q, want the explicit path", got)
	}

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.PlacementMs != 120 {
		t.Errorf("PlacementMs = %d, want 120", s.PlacementMs)
	}
}
