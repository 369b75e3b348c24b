package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestJSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo)
	log.Info("document parsed", "pages", 2)

	output := buf.String()
	if !strings.Contains(output, "document parsed") {
		t.Fatalf("expected message in output, got: %s", output)
	}
	if !strings.Contains(output, `"pages":2`) {
		t.Fatalf("expected pages=2 in JSON output, got: %s", output)
	}
	if !strings.Contains(output, `"level":"INFO"`) {
		t.Fatalf("expected level INFO in output, got: %s", output)
	}
}

func TestJSONLevelFiltering(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelWarn)
	log.Info("should not appear")
	log.Debug("also should not appear")

	if buf.Len() > 0 {
		t.Fatalf("expected no output for info/debug at warn level, got: %s", buf.String())
	}

	log.Warn("should appear")
	if !strings.Contains(buf.String(), "should appear") {
		t.Fatalf("expected warn message in output, got: %s", buf.String())
	}
}

func TestForFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		want   string
	}{
		{format: "json", want: `"msg":"hello"`},
		{format: "JSON", want: `"msg":"hello"`},
		{format: "text", want: "msg=hello"},
		{format: "", want: "hello"},
		{format: "pretty", want: "hello"},
	}
	for _, tc := range tests {
		var buf bytes.Buffer
		log, err := ForFormat(&buf, tc.format, slog.LevelInfo)
		if err != nil {
			t.Fatalf("ForFormat(%q): %v", tc.format, err)
		}
		log.Info("hello")
		if !strings.Contains(buf.String(), tc.want) {
			t.Errorf("ForFormat(%q): expected %q in output, got: %s", tc.format, tc.want, buf.String())
		}
	}

	if _, err := ForFormat(&bytes.Buffer{}, "xml", slog.LevelInfo); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestWith(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo)
	log.With("file", "doc.ntuple").Info("verified")

	output := buf.String()
	if !strings.Contains(output, `"file":"doc.ntuple"`) {
		t.Fatalf("expected file attr in output, got: %s", output)
	}
}

func TestWithGroup(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo)
	log.WithGroup("parse").Info("grouped", "section", "footer")

	if !strings.Contains(buf.String(), `"parse":{"section":"footer"}`) {
		t.Fatalf("expected grouped attrs, got: %s", buf.String())
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo)

	ctx := WithContext(context.Background(), log)
	FromContext(ctx).Info("roundtrip test")
	if !strings.Contains(buf.String(), "roundtrip test") {
		t.Fatalf("expected message via context logger, got: %s", buf.String())
	}

	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext with no logger returned nil")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" info ", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tc := range tests {
		if got := ParseLevel(tc.input); got != tc.expected {
			t.Errorf("ParseLevel(%q): expected %v, got %v", tc.input, tc.expected, got)
		}
	}
}

func TestPrettyHandlerEnabled(t *testing.T) {
	t.Parallel()
	h := NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected info to be disabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("expected error to be enabled at warn level")
	}
}

func TestPrettyWithoutColor(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, nil).WithoutColor()
	slog.New(h).Info("page verified", "index", 1, "offset", uint32(64))

	output := buf.String()
	if strings.Contains(output, "\033[") {
		t.Fatalf("expected no escape codes, got: %q", output)
	}
	if !strings.Contains(output, "INFO  page verified index=1 offset=64") {
		t.Fatalf("unexpected layout: %q", output)
	}
}

func TestPrettyHandlerGroupsAndAttrs(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, nil).WithoutColor()

	h2 := h.WithAttrs([]slog.Attr{slog.String("file", "a.ntuple")}).WithGroup("page").WithGroup("checksum")
	slog.New(h2).Info("mismatch", "stored", 7)

	output := buf.String()
	if !strings.Contains(output, "page.checksum.file=a.ntuple") {
		t.Fatalf("expected grouped handler attr, got: %s", output)
	}
	if !strings.Contains(output, "page.checksum.stored=7") {
		t.Fatalf("expected nested group key, got: %s", output)
	}
	if h.WithGroup("") != slog.Handler(h) {
		t.Fatal("WithGroup empty string should return same handler")
	}
}

func TestNeedsQuoting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected bool
	}{
		{"simple", false},
		{"has space", true},
		{"has\ttab", true},
		{"has\nnewline", true},
		{`has"quote`, true},
		{"k=v", true},
		{"", true},
	}

	for _, tc := range tests {
		if got := needsQuoting(tc.input); got != tc.expected {
			t.Errorf("needsQuoting(%q): expected %v, got %v", tc.input, tc.expected, got)
		}
	}
}
