package logging

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func newTestWriter(t *testing.T, cfg RotationConfig, maxBytes int64) (*RotatingWriter, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.log")
	rw, err := NewRotatingWriter(path, cfg)
	if err != nil {
		t.Fatalf("NewRotatingWriter failed: %v", err)
	}
	// Tiny limits keep the tests fast.
	rw.maxBytes = maxBytes
	return rw, path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestNewRotatingWriter(t *testing.T) {
	t.Run("creates file and directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a", "b", "test.log")

		rw, err := NewRotatingWriter(path, DefaultRotationConfig())
		if err != nil {
			t.Fatalf("NewRotatingWriter failed: %v", err)
		}
		defer rw.Close()

		if !fileExists(path) {
			t.Error("log file was not created")
		}
		if rw.Path() != path {
			t.Errorf("Path() = %q, want %q", rw.Path(), path)
		}
	})

	t.Run("picks up existing size", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.log")
		if err := os.WriteFile(path, []byte("existing\n"), 0644); err != nil {
			t.Fatal(err)
		}

		rw, err := NewRotatingWriter(path, DefaultRotationConfig())
		if err != nil {
			t.Fatalf("NewRotatingWriter failed: %v", err)
		}
		defer rw.Close()

		if rw.Size() != int64(len("existing\n")) {
			t.Errorf("Size() = %d", rw.Size())
		}
	})
}

func TestRotatingWriter_Rotation(t *testing.T) {
	msg := []byte("this is a test message that will trigger rotation\n")

	t.Run("rotates when size exceeds max", func(t *testing.T) {
		rw, path := newTestWriter(t, RotationConfig{MaxBackups: 3}, 100)

		for range 5 {
			if _, err := rw.Write(msg); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
		}
		rw.Close()

		if !fileExists(path + ".1") {
			t.Error("backup file .1 was not created")
		}
		if !fileExists(path) {
			t.Error("current log file does not exist after rotation")
		}
	})

	t.Run("keeps only MaxBackups files", func(t *testing.T) {
		rw, path := newTestWriter(t, RotationConfig{MaxBackups: 2}, 50)

		for range 10 {
			_, _ = rw.Write(msg)
		}
		rw.Close()

		if !fileExists(path + ".1") {
			t.Error("backup file .1 should exist")
		}
		if !fileExists(path + ".2") {
			t.Error("backup file .2 should exist")
		}
		if fileExists(path + ".3") {
			t.Error("backup file .3 should not exist")
		}
	})

	t.Run("truncates when no backups are kept", func(t *testing.T) {
		rw, path := newTestWriter(t, RotationConfig{MaxBackups: 0}, 60)

		for range 4 {
			_, _ = rw.Write(msg)
		}
		rw.Close()

		if fileExists(path + ".1") {
			t.Error("no backup should be kept")
		}
		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(content) != string(msg) {
			t.Errorf("live file should hold only the last write, got %q", content)
		}
	})

	t.Run("no rotation when disabled", func(t *testing.T) {
		rw, path := newTestWriter(t, RotationConfig{MaxBackups: 3}, 0)

		for range 100 {
			_, _ = rw.Write(msg)
		}
		rw.Close()

		if fileExists(path + ".1") {
			t.Error("backup file should not exist when rotation is disabled")
		}
	})
}

func TestRotatingWriter_Compression(t *testing.T) {
	rw, path := newTestWriter(t, RotationConfig{MaxBackups: 2, Compress: true}, 40)

	first := "first line that fills the file up\n"
	_, _ = rw.Write([]byte(first))
	_, _ = rw.Write([]byte("second line rotates the first away\n"))
	rw.Close()

	if fileExists(path + ".1") {
		t.Error("uncompressed backup should be removed after compression")
	}

	f, err := os.Open(path + ".1.gz")
	if err != nil {
		t.Fatalf("compressed backup missing: %v", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("gzip.NewReader failed: %v", err)
	}
	data, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("failed to read compressed backup: %v", err)
	}
	if string(data) != first {
		t.Errorf("compressed backup = %q, want %q", data, first)
	}
}

func TestRotatingWriter_Concurrency(t *testing.T) {
	rw, path := newTestWriter(t, RotationConfig{MaxBackups: 50}, 1024)

	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			for range 50 {
				_, _ = rw.Write([]byte("concurrent line\n"))
			}
		})
	}
	wg.Wait()
	rw.Close()

	total := 0
	matches, _ := filepath.Glob(path + "*")
	for _, m := range matches {
		content, err := os.ReadFile(m)
		if err != nil {
			t.Fatal(err)
		}
		total += strings.Count(string(content), "\n")
	}
	if total != 400 {
		t.Errorf("expected 400 lines across all files, got %d", total)
	}
}

func TestRotatingWriter_Close(t *testing.T) {
	rw, _ := newTestWriter(t, DefaultRotationConfig(), 0)

	if err := rw.Close(); err != nil {
		t.Fatalf("Close() returned error: %v", err)
	}
	if err := rw.Close(); err != nil {
		t.Errorf("second Close() returned error: %v", err)
	}
	if _, err := rw.Write([]byte("late")); err == nil {
		t.Error("Write after Close should fail")
	}
}

func TestNewLoggerWithRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "groundcrew.log")

	logger, err := NewLoggerWithRotation(path, LevelInfo, RotationConfig{MaxSizeMB: 1, MaxBackups: 1})
	if err != nil {
		t.Fatalf("NewLoggerWithRotation failed: %v", err)
	}
	logger.Info("rotating logger message")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() returned error: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "rotating logger message") {
		t.Errorf("log file missing message: %s", content)
	}
}
