package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNewValidatesConfig(t *testing.T) {
	var buf bytes.Buffer
	if _, err := New(Config{Level: "loud", Output: &buf}); err == nil {
		t.Fatalf("expected error for bad level")
	}
	if _, err := New(Config{Level: "info", Format: "xml", Output: &buf}); err == nil {
		t.Fatalf("expected error for bad format")
	}
	l, err := New(Config{Level: "warn", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	l.Info("dropped")
	l.Warn("kept")
	if strings.Contains(buf.String(), "dropped") || !strings.Contains(buf.String(), "kept") {
		t.Fatalf("level not applied: %s", buf.String())
	}
	if lvl, err := ParseLevel(""); err != nil || lvl != slog.LevelInfo {
		t.Fatalf("empty level = %v %v", lvl, err)
	}
}

func TestAccessLogAndRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	l, _ := New(Config{Level: "debug", Format: "json", Output: &buf})

	r := gin.New()
	r.Use(RequestID(), Access(l, func(*gin.Context) uint { return 7 }))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req := httptest.NewRequest(http.MethodGet, "/ok?x=1", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Fatalf("request id echoed = %q", got)
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry["level"] != "INFO" || entry[FieldRequestID] != "abc-123" || entry[FieldQuery] != "x=1" || entry[FieldUserID] != float64(7) {
		t.Fatalf("unexpected entry %v", entry)
	}

	buf.Reset()
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Fatalf("request id not generated")
	}
	if !strings.Contains(buf.String(), `"level":"WARN"`) {
		t.Fatalf("4xx not logged at warn: %s", buf.String())
	}
}
