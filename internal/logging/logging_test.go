package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	tests := []struct {
		name      string
		logger    Logger
		wantInfo  bool
		wantDebug bool
	}{
		{"quiet", Logger{}, false, false},
		{"verbose", Logger{Verbose: true}, true, false},
		{"debug", Logger{Debug: true}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			l := tt.logger
			l.Out, l.Err = &out, &errOut

			l.Infof("loaded %d records", 3)
			l.Debugf("revision %s", "abc")
			l.Warnf("careful")

			if got := strings.Contains(out.String(), "loaded 3 records"); got != tt.wantInfo {
				t.Errorf("info shown = %v, want %v", got, tt.wantInfo)
			}
			if got := strings.Contains(out.String(), "revision abc"); got != tt.wantDebug {
				t.Errorf("debug shown = %v, want %v", got, tt.wantDebug)
			}
			if !strings.Contains(errOut.String(), "[warn]") || !strings.Contains(errOut.String(), "careful") {
				t.Errorf("warnings should always be shown, got %q", errOut.String())
			}
		})
	}
}

func TestErrorfAndReturn(t *testing.T) {
	var errOut bytes.Buffer
	l := Logger{Debug: true, Err: &errOut}

	sentinel := errors.New("boom")
	err := l.ErrorfAndReturn("saving store: %w", sentinel)
	if !errors.Is(err, sentinel) {
		t.Errorf("returned error should wrap the cause, got %v", err)
	}
	if !strings.Contains(errOut.String(), "saving store: boom") {
		t.Errorf("expected error to be logged, got %q", errOut.String())
	}
}
