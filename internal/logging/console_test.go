package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsoleSink_Write(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, true)

	sink.Write(LevelWarning, CategoryBoarding, "BoardingService", "boarding delayed")

	out := buf.String()
	for _, want := range []string{"WRN", "BoardingService", "boarding delayed", "categories=boarding"} {
		if !strings.Contains(out, want) {
			t.Errorf("console output %q missing %q", out, want)
		}
	}
}

func TestConsoleSink_CriticalDoesNotExit(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, true)

	sink.Write(LevelCritical, CategoryAll, "Core", "simulator connection lost")

	if !strings.Contains(buf.String(), "simulator connection lost") {
		t.Errorf("critical message missing from output: %q", buf.String())
	}
}

func TestMultiSink(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	var seen int
	multi := MultiSink{a, b, SinkFunc(func(Level, Category, string, string) { seen++ })}

	multi.Write(LevelInfo, CategoryCargo, "Cargo", "loaded")

	if a.count() != 1 || b.count() != 1 || seen != 1 {
		t.Errorf("fan-out counts: a=%d b=%d func=%d", a.count(), b.count(), seen)
	}
}
