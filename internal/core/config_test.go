package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/valter-silva-au/burrito/pkg/models"
)

// --- Helper ---

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// --- LoadGlobalConfig tests ---

func TestLoadGlobalConfig_Defaults_WhenNoFile(t *testing.T) {
	dir := t.TempDir()
	cm := NewConfigurationManager(dir)

	cfg, err := cm.LoadGlobalConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.Summary {
		t.Error("Summary = false, want true")
	}
	if !cfg.Fold {
		t.Error("Fold = false, want true")
	}
	if cfg.RefreshSeconds != 5 {
		t.Errorf("RefreshSeconds = %d, want 5", cfg.RefreshSeconds)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "warn")
	}
	if cfg.Head != "" || cfg.Tail != "" {
		t.Errorf("Head/Tail = %q/%q, want empty", cfg.Head, cfg.Tail)
	}
}

func TestLoadGlobalConfig_ReadsBurritoYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".burrito.yaml", `
export:
  summary: false
  fold: false
html:
  head: "<link rel='stylesheet' href='extra.css'>"
  tail: "<footer>generated</footer>"
  refresh_seconds: 30
log:
  level: debug
`)

	cm := NewConfigurationManager(dir)
	cfg, err := cm.LoadGlobalConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Summary || cfg.Fold {
		t.Errorf("Summary/Fold = %v/%v, want false/false", cfg.Summary, cfg.Fold)
	}
	if cfg.Head != "<link rel='stylesheet' href='extra.css'>" {
		t.Errorf("Head = %q", cfg.Head)
	}
	if cfg.Tail != "<footer>generated</footer>" {
		t.Errorf("Tail = %q", cfg.Tail)
	}
	if cfg.RefreshSeconds != 30 {
		t.Errorf("RefreshSeconds = %d, want 30", cfg.RefreshSeconds)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
}

func TestLoadGlobalConfig_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".burrito.yaml", "html:\n  refresh_seconds: 0\n")

	cfg, err := NewConfigurationManager(dir).LoadGlobalConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RefreshSeconds != 0 {
		t.Errorf("RefreshSeconds = %d, want 0", cfg.RefreshSeconds)
	}
	if !cfg.Summary || !cfg.Fold {
		t.Error("unset keys must keep their defaults")
	}
}

func TestLoadGlobalConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".burrito.yaml", "log:\n  level: info\n")
	t.Setenv("BURRITO_LOG_LEVEL", "error")

	cfg, err := NewConfigurationManager(dir).LoadGlobalConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "error")
	}
}

func TestLoadGlobalConfig_DecodesMarshalledConfig(t *testing.T) {
	want := &models.GlobalConfig{
		ExportSettings: models.ExportSettings{Summary: false, Fold: true},
		HTMLSettings: models.HTMLSettings{
			Head:           "<base href='/tasks/'>",
			Tail:           "<p>tail</p>",
			RefreshSeconds: 42,
		},
		LogSettings: models.LogSettings{LogLevel: "info"},
	}
	data, err := yaml.Marshal(want)
	if err != nil {
		t.Fatalf("marshalling config: %v", err)
	}
	for _, key := range []string{"export:", "html:", "log:", "refresh_seconds: 42", "level: info"} {
		if !strings.Contains(string(data), key) {
			t.Fatalf("marshalled config missing %q:\n%s", key, data)
		}
	}

	dir := t.TempDir()
	writeFile(t, dir, ".burrito.yaml", string(data))

	got, err := NewConfigurationManager(dir).LoadGlobalConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *got != *want {
		t.Errorf("LoadGlobalConfig() = %+v, want %+v", *got, *want)
	}
}

func TestLoadGlobalConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".burrito.yaml", "export: [unclosed\n")

	_, err := NewConfigurationManager(dir).LoadGlobalConfig()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "reading .burrito.yaml") {
		t.Errorf("unexpected error: %v", err)
	}
}

// --- ValidateConfig tests ---

func TestValidateConfig(t *testing.T) {
	cm := NewConfigurationManager(t.TempDir())

	if err := cm.ValidateConfig(DefaultGlobalConfig()); err != nil {
		t.Errorf("defaults should be valid: %v", err)
	}
	if err := cm.ValidateConfig(nil); err == nil {
		t.Error("expected error for nil config")
	}

	cfg := DefaultGlobalConfig()
	cfg.RefreshSeconds = -1
	cfg.LogLevel = "loud"
	err := cm.ValidateConfig(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "refresh_seconds") || !strings.Contains(err.Error(), "log.level") {
		t.Errorf("error should name both problems: %v", err)
	}
}

// --- ApplyOptions tests ---

func TestApplyOptions(t *testing.T) {
	cfg := DefaultGlobalConfig()
	if err := ApplyOptions(cfg, []string{"summary=0", "fold=2", "refresh=0"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Summary {
		t.Error("summary=0 should disable the summary")
	}
	if cfg.Fold {
		t.Error("fold=2 is not 1 and should disable folding")
	}
	if cfg.RefreshSeconds != 0 {
		t.Errorf("RefreshSeconds = %d, want 0", cfg.RefreshSeconds)
	}

	if err := ApplyOptions(cfg, []string{"summary=1"}); err != nil || !cfg.Summary {
		t.Errorf("summary=1 should enable the summary, err=%v", err)
	}
}

func TestApplyOptions_Errors(t *testing.T) {
	tests := []struct {
		option string
		want   string
	}{
		{"summary", "invalid option 'summary', not in KEY=VALUE format"},
		{"fold=yes", "invalid value yes for fold config value"},
		{"refresh=-3", "invalid value -3 for refresh config value"},
		{"colour=1", "unknown option 'colour'"},
	}

	for _, tt := range tests {
		t.Run(tt.option, func(t *testing.T) {
			err := ApplyOptions(DefaultGlobalConfig(), []string{tt.option})
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.want {
				t.Errorf("error = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

// --- ExportConfigFor tests ---

func TestExportConfigFor(t *testing.T) {
	cfg := DefaultGlobalConfig()
	cfg.Head = "<style>h1 { color: red; }</style>"
	cfg.Tail = "<p>end</p>"
	cfg.Fold = false

	out := ExportConfigFor(cfg)

	want := `<meta http-equiv="refresh" content="5">` + "\n" + cfg.Head
	if out.HeadPrefix != want {
		t.Errorf("HeadPrefix = %q, want %q", out.HeadPrefix, want)
	}
	if out.BodySuffix != "<p>end</p>" {
		t.Errorf("BodySuffix = %q", out.BodySuffix)
	}
	if !out.IncludeSummary || out.FoldTOC {
		t.Errorf("IncludeSummary/FoldTOC = %v/%v, want true/false", out.IncludeSummary, out.FoldTOC)
	}
	if out.IncludeTOC || out.IncludeCalendar {
		t.Error("sections are chosen by the exporter, not the config")
	}
}

func TestExportConfigFor_NoRefresh(t *testing.T) {
	cfg := DefaultGlobalConfig()
	cfg.RefreshSeconds = 0

	if out := ExportConfigFor(cfg); out.HeadPrefix != "" {
		t.Errorf("HeadPrefix = %q, want empty", out.HeadPrefix)
	}
}

func TestExportConfigFor_UsesModelsDefaults(t *testing.T) {
	out := ExportConfigFor(DefaultGlobalConfig())
	def := models.DefaultExportConfig()
	if out.IncludeTOC != def.IncludeTOC || out.IncludeCalendar != def.IncludeCalendar {
		t.Errorf("section flags diverge from defaults: %+v", out)
	}
}
