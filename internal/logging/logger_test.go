package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewTextLoggerWritesLevelsAboveThreshold(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn", "text")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	ctx := context.Background()

	logger.Debug(ctx, "dbg")
	logger.Info(ctx, "inf")
	logger.Warn(ctx, "wrn", "key", "value")
	logger.Error(ctx, "err")

	out := buf.String()
	if strings.Contains(out, "msg=dbg") || strings.Contains(out, "msg=inf") {
		t.Fatalf("expected debug and info records to be filtered, got:\n%s", out)
	}
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "key=value") {
		t.Fatalf("expected warn record with attribute, got:\n%s", out)
	}
	if !strings.Contains(out, "level=ERROR") {
		t.Fatalf("expected error record, got:\n%s", out)
	}
}

func TestNewJSONLoggerWithAddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "debug", "json")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	logger.With("component", "ledger").Info(context.Background(), "entry added", "kind", "entrada")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode json record %q: %v", buf.String(), err)
	}
	if record["msg"] != "entry added" {
		t.Fatalf("expected msg=entry added, got %v", record["msg"])
	}
	if record["component"] != "ledger" || record["kind"] != "entrada" {
		t.Fatalf("expected component and kind attributes, got %v", record)
	}
}

func TestNewRejectsUnknownLevelAndFormat(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "verbose", "text"); err == nil {
		t.Fatal("expected unknown level to fail")
	}
	if _, err := New(&bytes.Buffer{}, "info", "xml"); err == nil {
		t.Fatal("expected unknown format to fail")
	}
}

func TestPrintfWritesWarnRecord(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "info", "text")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	logger.Printf("slow query %dms\n", 250)

	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "slow query 250ms") {
		t.Fatalf("expected gorm message as warn record, got:\n%s", out)
	}
}
