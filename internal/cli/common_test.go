package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintVersion(&buf, "minilang", false); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "minilang v"+Version+"\n") {
		t.Errorf("unexpected output %q", buf.String())
	}
	if strings.Contains(buf.String(), "Commit:") {
		t.Error("unknown commit should not be printed")
	}

	buf.Reset()
	if err := PrintVersion(&buf, "minilang", true); err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Tool        string      `json:"tool"`
		VersionInfo VersionInfo `json:"version_info"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Tool != "minilang" || decoded.VersionInfo.LanguageVersion != LanguageVersion {
		t.Errorf("unexpected JSON %+v", decoded)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, false, false)
	logger.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	logger.Info("hidden")
	logger.Debug("hidden")
	logger.Warn("careful %d", 1)
	logger.Error("broken")

	want := "[WARN] 03:04:05: careful 1\n[ERROR] 03:04:05: broken\n"
	if buf.String() != want {
		t.Errorf("output =\n%q\nwant\n%q", buf.String(), want)
	}

	buf.Reset()
	logger.Verbose = true
	logger.DebugMode = true
	logger.RunID = "0123456789abcdef"
	logger.Info("checking %s", "a.ml")
	logger.Debug("tokens=%d", 7)

	want = "[INFO] 03:04:05: checking a.ml\n[DEBUG] 03:04:05: run=01234567 tokens=7\n"
	if buf.String() != want {
		t.Errorf("output =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestLoggerRunIDsDiffer(t *testing.T) {
	a := NewLoggerTo(&bytes.Buffer{}, false, false)
	b := NewLoggerTo(&bytes.Buffer{}, false, false)
	if a.RunID == "" || a.RunID == b.RunID {
		t.Errorf("run ids should be unique: %q %q", a.RunID, b.RunID)
	}
}

func TestColorMode(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	t.Setenv("NO_COLOR", "")
	t.Setenv("TERM", "xterm")

	if !ColorAlways.Enabled(f) {
		t.Error("always should enable colour")
	}
	if ColorNever.Enabled(f) {
		t.Error("never should disable colour")
	}
	if ColorAuto.Enabled(f) {
		t.Error("auto should not colour a regular file")
	}
	if IsTerminal(f) {
		t.Error("a regular file is not a terminal")
	}

	t.Setenv("NO_COLOR", "1")
	if ColorAuto.Enabled(os.Stdout) {
		t.Error("NO_COLOR should disable auto colour")
	}
}
