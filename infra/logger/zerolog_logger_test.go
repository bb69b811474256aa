package logger

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZerologLoggerMethods(t *testing.T) {
	assert.NoError(t, os.Setenv("SKYOPS_ENV", "dev"))
	assert.NoError(t, os.Setenv("SKYOPS_LOG_LEVEL", "debug"))
	defer func() {
		assert.NoError(t, os.Unsetenv("SKYOPS_ENV"))
		assert.NoError(t, os.Unsetenv("SKYOPS_LOG_LEVEL"))
	}()
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}
