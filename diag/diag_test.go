package diag

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func withCapturedLogger(t *testing.T) *test.Hook {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	SetLogger(logger)
	t.Cleanup(func() {
		Disable()
		SetLogger(nil)
	})
	return hook
}

func TestDisabledProducesNoOutput(t *testing.T) {
	hook := withCapturedLogger(t)
	Disable()

	Printf("debug %d", 1)
	Warnf("warn %d", 2)
	Errorf("error %d", 3)

	if got := len(hook.Entries); got != 0 {
		t.Fatalf("disabled channel produced %d entries", got)
	}
}

func TestEnabledEmitsAtEachLevel(t *testing.T) {
	hook := withCapturedLogger(t)
	Enable()

	Printf("debug message")
	Warnf("warn message")
	Errorf("error message")

	if got := len(hook.Entries); got != 3 {
		t.Fatalf("got %d entries, want 3", got)
	}
	levels := []logrus.Level{logrus.DebugLevel, logrus.WarnLevel, logrus.ErrorLevel}
	for i, entry := range hook.Entries {
		if entry.Level != levels[i] {
			t.Errorf("entry %d level = %v, want %v", i, entry.Level, levels[i])
		}
	}
	if hook.Entries[0].Message != "debug message" {
		t.Errorf("message = %q", hook.Entries[0].Message)
	}
}

func TestEnableDisableToggle(t *testing.T) {
	hook := withCapturedLogger(t)

	Enable()
	if !Enabled() {
		t.Error("Enabled() = false after Enable")
	}
	Printf("on")

	Disable()
	if Enabled() {
		t.Error("Enabled() = true after Disable")
	}
	Printf("off")

	if got := len(hook.Entries); got != 1 {
		t.Fatalf("got %d entries, want 1", got)
	}
}
