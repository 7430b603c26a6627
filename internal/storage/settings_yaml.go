package storage

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"eventtimer/internal/platform"
	"eventtimer/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	EventTitle      string `yaml:"event_title"`
	DurationSeconds int    `yaml:"duration_seconds"`
	ReminderSeconds []int  `yaml:"reminder_seconds"`
	TickIntervalMs  int    `yaml:"tick_interval_ms"`
	Muted           bool   `yaml:"muted"`
}

// LoadSettingsFrom reads user preferences from configPath.
// If the file does not exist, default settings are returned.
func LoadSettingsFrom(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, errors.Wrap(err, "read settings file")
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, errors.Wrap(err, "parse settings yaml")
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettingsTo writes user preferences to configPath.
func SaveSettingsTo(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return errors.Wrap(err, "create config directory")
	}

	fileData := yamlSettings{
		EventTitle:      settings.EventTitle,
		DurationSeconds: int(settings.Duration / time.Second),
		TickIntervalMs:  int(settings.TickInterval / time.Millisecond),
		Muted:           settings.Muted,
	}
	for _, reminder := range settings.Reminders {
		fileData.ReminderSeconds = append(fileData.ReminderSeconds, int(reminder/time.Second))
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return errors.Wrap(err, "marshal settings yaml")
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return errors.Wrap(err, "write settings file")
	}

	return nil
}

// ResolveConfigPath returns the settings file path for appName.
func ResolveConfigPath(appName string) (string, error) {
	configDir, err := platform.AppConfigDir(appName)
	if err != nil {
		return "", errors.Wrap(err, "resolve user config dir")
	}
	return filepath.Join(configDir, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	settings.EventTitle = strings.TrimSpace(fileData.EventTitle)

	if fileData.DurationSeconds > 0 {
		settings.Duration = time.Duration(fileData.DurationSeconds) * time.Second
	}
	if fileData.TickIntervalMs >= 10 && fileData.TickIntervalMs <= 1000 {
		settings.TickInterval = time.Duration(fileData.TickIntervalMs) * time.Millisecond
	}

	seen := make(map[int]bool, len(fileData.ReminderSeconds))
	for _, seconds := range fileData.ReminderSeconds {
		if seconds <= 0 || seen[seconds] {
			continue
		}
		seen[seconds] = true
		settings.Reminders = append(settings.Reminders, time.Duration(seconds)*time.Second)
	}

	settings.Muted = fileData.Muted
}
