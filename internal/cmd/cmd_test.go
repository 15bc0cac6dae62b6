package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// resetFlags restores every flag of c and its subcommands to its default.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// executeCommand runs the root command with args in an isolated config
// environment and returns what was written to stdout and stderr.
func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	// Keep the user's real config and the working directory out of the test
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	viper.Reset()
	resetFlags(rootCmd)
	t.Cleanup(viper.Reset)

	var outBuf, errBuf bytes.Buffer
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

// writeConfig writes content to a config file in a temp dir.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "groundcrew" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "groundcrew")
	}

	expectedCmds := []string{"presets", "categories", "config", "emit", "serve"}
	cmdMap := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		cmdMap[c.Name()] = true
	}
	for _, name := range expectedCmds {
		if !cmdMap[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}

	if rootCmd.PersistentFlags().Lookup("config") == nil {
		t.Error("missing persistent --config flag")
	}
}

func TestPresetsCommand_Table(t *testing.T) {
	out, _, err := executeCommand(t, "presets")
	if err != nil {
		t.Fatalf("presets failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 9 {
		t.Fatalf("expected header plus 8 presets, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "PRESET") {
		t.Errorf("first line should be the header: %q", lines[0])
	}
	if !strings.Contains(out, "simconnect|refueling") {
		t.Errorf("refueling row missing its categories:\n%s", out)
	}
	if !strings.Contains(out, "CRITICAL") {
		t.Errorf("critical preset should show its level:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("table written to a buffer should not contain ANSI escapes")
	}
}

func TestPresetsCommand_Structured(t *testing.T) {
	tests := []struct {
		format string
		decode func([]byte, any) error
	}{
		{"json", json.Unmarshal},
		{"yaml", yaml.Unmarshal},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, _, err := executeCommand(t, "presets", "--output", tt.format)
			if err != nil {
				t.Fatalf("presets failed: %v", err)
			}

			var views []presetView
			if err := tt.decode([]byte(out), &views); err != nil {
				t.Fatalf("decode %s: %v\n%s", tt.format, err, out)
			}
			if len(views) != 8 {
				t.Fatalf("expected 8 presets, got %d", len(views))
			}
			if views[0].Name != "refueling" {
				t.Errorf("first preset = %q, want refueling", views[0].Name)
			}
			if views[4].Name != "critical" || views[4].Level != "CRITICAL" {
				t.Errorf("critical preset = %+v", views[4])
			}
			if views[1].Level != "" {
				t.Errorf("boarding preset should not set a level: %+v", views[1])
			}
		})
	}
}

func TestPresetsCommand_InvalidOutput(t *testing.T) {
	if _, _, err := executeCommand(t, "presets", "-o", "xml"); err == nil {
		t.Error("expected error for unknown output format")
	}
}

func TestCategoriesCommand(t *testing.T) {
	t.Run("all active by default", func(t *testing.T) {
		out, _, err := executeCommand(t, "categories")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out, "12 of 12 categories active") {
			t.Errorf("unexpected summary:\n%s", out)
		}
	})

	t.Run("preset from environment", func(t *testing.T) {
		t.Setenv("GROUNDCREW_LOGGING_PRESET", "boarding")

		out, _, err := executeCommand(t, "categories")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out, "2 of 12 categories active") {
			t.Errorf("unexpected summary:\n%s", out)
		}
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := executeCommand(t, "categories", "-o", "json")
		if err != nil {
			t.Fatal(err)
		}
		var names []string
		if err := json.Unmarshal([]byte(out), &names); err != nil {
			t.Fatal(err)
		}
		if len(names) != 12 || names[0] != "simconnect" {
			t.Errorf("names = %v", names)
		}
	})
}

func TestConfigCommand(t *testing.T) {
	t.Run("show uses file", func(t *testing.T) {
		path := writeConfig(t, "logging:\n  preset: cargo\n")

		out, _, err := executeCommand(t, "--config", path, "config", "show")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out, path) {
			t.Errorf("show should name the config file:\n%s", out)
		}
		if !strings.Contains(out, "categories=doors|cargo") {
			t.Errorf("show should print the effective filter:\n%s", out)
		}
	})

	t.Run("validate rejects bad values", func(t *testing.T) {
		path := writeConfig(t, "logging:\n  level: loud\n")

		_, _, err := executeCommand(t, "--config", path, "config", "validate")
		if err == nil || !strings.Contains(err.Error(), "logging.level") {
			t.Errorf("validate error = %v", err)
		}
	})

	t.Run("init creates file once", func(t *testing.T) {
		out, _, err := executeCommand(t, "config", "init")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out, "Created config file") {
			t.Errorf("unexpected output: %s", out)
		}

		data, err := os.ReadFile(filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "groundcrew", "config.yaml"))
		if err != nil {
			t.Fatalf("config file not written: %v", err)
		}
		// The generated file must itself be valid
		var parsed map[string]any
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			t.Fatalf("generated config is not YAML: %v", err)
		}
	})

	t.Run("path", func(t *testing.T) {
		out, _, err := executeCommand(t, "config", "path")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out, "GROUNDCREW_LOGGING_PRESET") {
			t.Errorf("path should mention env overrides:\n%s", out)
		}
	})
}

func TestEmitCommand(t *testing.T) {
	out, logs, err := executeCommand(t, "emit", "--producers", "3", "--events", "9")
	if err != nil {
		t.Fatalf("emit failed: %v", err)
	}

	want := "published 27 events from 3 producers: 27 delivered, 0 with failed subscribers"
	if !strings.Contains(out, want) {
		t.Errorf("emit output = %q, want %q", out, want)
	}
	if !strings.Contains(logs, `"msg"`) {
		t.Error("emit should log events as JSON to stderr")
	}
}

func TestEmitCommand_PresetFiltersLogs(t *testing.T) {
	path := writeConfig(t, "logging:\n  preset: critical\n")

	_, logs, err := executeCommand(t, "--config", path, "emit", "-p", "1", "-n", "30")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(logs, "connected") {
		t.Errorf("critical preset should suppress info messages:\n%s", logs)
	}
}

func TestEmitCommand_InvalidProducers(t *testing.T) {
	if _, _, err := executeCommand(t, "emit", "--producers", "0"); err == nil {
		t.Error("expected error for zero producers")
	}
}

func TestServeCommand(t *testing.T) {
	_, logs, err := executeCommand(t, "serve", "--duration", "150ms", "--heartbeat", "20ms")
	if err != nil {
		t.Fatalf("serve failed: %v", err)
	}

	if !strings.Contains(logs, "groundcrew active") {
		t.Errorf("serve should publish heartbeats:\n%s", logs)
	}
	if !strings.Contains(logs, "groundcrew completed") {
		t.Errorf("serve should publish a final status:\n%s", logs)
	}
}

func TestServeCommand_InvalidHeartbeat(t *testing.T) {
	if _, _, err := executeCommand(t, "serve", "--heartbeat", "0s"); err == nil {
		t.Error("expected error for zero heartbeat")
	}
}
