package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestSetupWriter(t *testing.T) {
	defer func() { logger = nil }()

	var b bytes.Buffer
	SetupWriter(&b, LogLevelInfo)
	Log(LogLevelDebug, "hidden")
	Log(LogLevelInfo, "machine stopped", "ip", 4)
	LogErr(errors.New("boom"), "machine aborted", "machine", "amp-0")
	LogErr(nil, "ignored")
	out := b.String()
	for _, s := range []string{`msg="machine stopped" ip=4`, "level=ERROR", "error=boom", "machine=amp-0"} {
		if !strings.Contains(out, s) {
			t.Errorf("missing %q in:\n%s", s, out)
		}
	}
	if strings.Contains(out, "hidden") || strings.Contains(out, "ignored") {
		t.Errorf("unexpected records:\n%s", out)
	}
	if Enabled(LogLevelDebug) || !Enabled(LogLevelInfo) {
		t.Error("Enabled does not follow the configured level")
	}

	b.Reset()
	SetupWriter(&b, LogLevelNone)
	Log(LogLevelInfo, "dropped")
	if b.Len() != 0 {
		t.Errorf("none level wrote %q", b.String())
	}
}

func TestNoLogger(t *testing.T) {
	logger = nil
	Log(LogLevelInfo, "nothing")
	LogErr(errors.New("x"), "nothing")
	if Enabled(LogLevelInfo) {
		t.Error("Enabled without logger")
	}
}
