package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGetConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup is Linux only")
	}
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if want := filepath.Join(xdg, "cantrace"); configDir != want {
		t.Errorf("GetConfigDir() = %v, want %v", configDir, want)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewSettings(t *testing.T) {
	s := NewSettings()

	if s.Version != 1 {
		t.Errorf("NewSettings().Version = %v, want 1", s.Version)
	}
	if s.Format != "log" {
		t.Errorf("NewSettings().Format = %q, want log", s.Format)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup is Linux only")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(NewSettings(), s); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	want := &Settings{
		Version:     1,
		LogLevel:    "debug",
		Format:      "table",
		Workers:     4,
		Limit:       100,
		ShowRejects: true,
	}
	if err := want.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.HasPrefix(string(data), "# can-tracetool configuration") {
		t.Error("header comment missing")
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    *Settings
		wantErr bool
	}{
		{
			name: "toml",
			file: "config.toml",
			content: `version = 1
format = "json"
workers = 2
show_rejects = true
`,
			want: &Settings{Version: 1, Format: "json", Workers: 2, ShowRejects: true},
		},
		{
			name:    "partial yaml gets defaults",
			file:    "config.yml",
			content: "limit: 5\n",
			want:    &Settings{Version: 1, Format: "log", Limit: 5},
		},
		{
			name:    "unsupported version",
			file:    "config.yaml",
			content: "version: 2\n",
			wantErr: true,
		},
		{
			name:    "unknown format",
			file:    "config.yaml",
			content: "format: xml\n",
			wantErr: true,
		},
		{
			name:    "log level",
			file:    "config.yaml",
			content: "log_level: DEBUG\n",
			want:    &Settings{Version: 1, LogLevel: "DEBUG", Format: "log"},
		},
		{
			name:    "unknown log level",
			file:    "config.yaml",
			content: "log_level: chatty\n",
			wantErr: true,
		},
		{
			name:    "negative workers",
			file:    "config.toml",
			content: "workers = -1\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "config.yaml",
			content: "format: [\n",
			wantErr: true,
		},
		{
			name:    "malformed toml",
			file:    "config.toml",
			content: "format = \n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatalf("write fixture: %v", err)
			}

			got, err := LoadFile(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadFile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("LoadFile() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFile() error = %v, want os.ErrNotExist", err)
	}
}

func TestSaveTo_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cantrace.toml")

	want := NewSettings()
	want.Format = "json"
	want.Workers = 2
	want.ShowRejects = true

	if err := want.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `format = "json"`) {
		t.Errorf("expected TOML output, got:\n%s", data)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TOML round trip mismatch (-want +got):\n%s", diff)
	}
}
