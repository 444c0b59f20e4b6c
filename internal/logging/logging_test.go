package logging

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestForAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	defer InitWriter(&bytes.Buffer{})

	l := For("router")
	l.Info().Msg("hello")

	var rec map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if rec["component"] != "router" {
		t.Errorf("component = %v, want router", rec["component"])
	}
	if rec["msg"] != "hello" {
		t.Errorf("msg = %v, want hello", rec["msg"])
	}
	if _, ok := rec["ts"]; !ok {
		t.Error("expected ts field from timestamp hook")
	}
}

func TestSetDebug(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	defer SetDebug(false)

	Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug line written at info level: %q", buf.String())
	}

	SetDebug(true)
	Debug().Msg("shown")
	if buf.Len() == 0 {
		t.Error("expected debug line after SetDebug(true)")
	}
}
