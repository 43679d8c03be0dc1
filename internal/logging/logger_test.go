package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zapcore.Level
		wantErr bool
	}{
		{input: "debug", want: zapcore.DebugLevel},
		{input: "INFO", want: zapcore.InfoLevel},
		{input: "warn", want: zapcore.WarnLevel},
		{input: "warning", want: zapcore.WarnLevel},
		{input: "error", want: zapcore.ErrorLevel},
		{input: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestInitialize_SilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")

	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if GetLogger().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger should be a no-op when no level is set")
	}
}

func TestInitialize_FromEnv(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "warn")
	defer SetLogger(nil)

	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	core := GetLogger().Core()
	if !core.Enabled(zapcore.WarnLevel) || core.Enabled(zapcore.InfoLevel) {
		t.Error("logger should be enabled at warn and above only")
	}
}

func TestInitialize_UnknownLevel(t *testing.T) {
	if err := Initialize("chatty"); err == nil {
		t.Error("Initialize(\"chatty\") should fail")
	}
}

func TestDomainHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	LogFileLoaded("capture.log", 128)
	LogClassified("capture.log", 2, 1, 1)
	LogLineRejected(4, "invalid timestamp", "bad line here")
	LogFrame(2, "can0", 0x123, []byte{0x41, 0x00})

	entries := logs.All()
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}

	classified := entries[1].ContextMap()
	if classified["total"] != int64(4) {
		t.Errorf("total field = %v, want 4", classified["total"])
	}

	frame := entries[3].ContextMap()
	if frame["id"] != "0x123" || frame["hex"] != "4100" || frame["ascii"] != "A." {
		t.Errorf("frame fields = %v", frame)
	}
}

func TestLogFrame_SkippedAboveDebug(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	LogFrame(1, "can0", 0x1, nil)
	if logs.Len() != 0 {
		t.Errorf("got %d entries at info level, want 0", logs.Len())
	}
}

func TestLevelHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	Info("dropped")
	Warn("Settings file not loaded")
	Error("Cannot read trace", zap.String("path", "absent.log"))

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel || entries[1].Level != zapcore.ErrorLevel {
		t.Errorf("levels = %v, %v", entries[0].Level, entries[1].Level)
	}
	if entries[1].ContextMap()["path"] != "absent.log" {
		t.Errorf("error fields = %v", entries[1].ContextMap())
	}
}
