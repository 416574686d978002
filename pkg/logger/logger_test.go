package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Leopold1975/projects_control/internal/pkg/config"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.log")
	rotated := filepath.Join(dir, "rotated.log")

	lg, err := New(config.Logger{
		Level:  "info",
		Output: []string{out},
		File:   config.LogFile{Path: rotated, MaxSize: 1, MaxBackups: 1, MaxAge: 1},
	})
	require.NoError(t, err)

	lg.Debugf("hidden %d", 1)
	lg.With("request_id", "abc").Infof("visible %d", 2)
	_ = lg.Sync()

	for _, p := range []string{out, rotated} {
		b, err := os.ReadFile(p)
		require.NoError(t, err)
		require.Contains(t, string(b), "visible 2")
		require.Contains(t, string(b), "request_id")
		require.NotContains(t, string(b), "hidden")
	}
}

func TestNewBadLevel(t *testing.T) {
	_, err := New(config.Logger{Level: "loud"})
	require.Error(t, err)
}

func TestNop(t *testing.T) {
	lg := NewNop()
	lg.Errorf("nothing %s", "happens")
	require.NotNil(t, lg.With("k", "v"))
}
