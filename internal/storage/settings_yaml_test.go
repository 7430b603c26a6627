package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"

	"eventtimer/internal/platform"
	"eventtimer/internal/ui/preferences"
)

type testSettingsYAML struct {
	suite.Suite
	dir string
}

func (t *testSettingsYAML) SetupTest() {
	t.dir = t.T().TempDir()
}

func (t *testSettingsYAML) path() string {
	return filepath.Join(t.dir, "EventTimer", settingsFileName)
}

func (t *testSettingsYAML) TestMissingFileReturnsDefaults() {
	settings, err := LoadSettingsFrom(t.path())
	t.NoError(err)
	t.Equal(preferences.DefaultSettings(), settings)
}

func (t *testSettingsYAML) TestSaveThenLoad() {
	settings := preferences.DefaultSettings()
	settings.EventTitle = "Team sync"
	settings.Duration = 5 * time.Minute
	settings.Reminders = []time.Duration{2 * time.Minute, 30 * time.Second}
	settings.Muted = true

	t.NoError(SaveSettingsTo(t.path(), settings))

	loaded, err := LoadSettingsFrom(t.path())
	t.NoError(err)
	t.Equal(settings, loaded)
}

func (t *testSettingsYAML) TestInvalidValuesFallBack() {
	t.NoError(os.MkdirAll(filepath.Dir(t.path()), 0o755))
	t.NoError(os.WriteFile(t.path(), []byte(`
event_title: "  Keynote  "
duration_seconds: -5
reminder_seconds: [60, 0, 60, -3, 30]
tick_interval_ms: 5
`), 0o644))

	settings, err := LoadSettingsFrom(t.path())
	t.NoError(err)
	t.Equal("Keynote", settings.EventTitle)
	t.Equal(180*time.Second, settings.Duration)
	t.Equal(100*time.Millisecond, settings.TickInterval)
	t.Equal([]time.Duration{time.Minute, 30 * time.Second}, settings.Reminders)
}

func (t *testSettingsYAML) TestBrokenYAML() {
	t.NoError(os.MkdirAll(filepath.Dir(t.path()), 0o755))
	t.NoError(os.WriteFile(t.path(), []byte("duration_seconds: [oops"), 0o644))

	settings, err := LoadSettingsFrom(t.path())
	t.Error(err)
	t.Contains(err.Error(), "parse settings yaml")
	t.Equal(preferences.DefaultSettings(), settings)
}

func (t *testSettingsYAML) TestReadErrorKeepsCause() {
	t.NoError(os.MkdirAll(t.path(), 0o755))

	settings, err := LoadSettingsFrom(t.path())
	t.Error(err)
	t.Contains(err.Error(), "read settings file")
	var pathErr *os.PathError
	t.True(errors.As(err, &pathErr))
	t.IsType(&os.PathError{}, errors.Cause(err))
	t.Equal(preferences.DefaultSettings(), settings)
}

func (t *testSettingsYAML) TestResolveConfigPath() {
	base, err := platform.ConfigDir()
	t.Require().NoError(err)

	path, err := ResolveConfigPath("EventTimer")
	t.NoError(err)
	t.Equal(filepath.Join(base, "EventTimer", "settings.yaml"), path)
}

func TestSettingsYAML(t *testing.T) {
	suite.Run(t, new(testSettingsYAML))
}
