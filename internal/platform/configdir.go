package platform

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ConfigDir returns the OS-standard configuration directory. When the
// environment does not expose one, a home-relative default is used.
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", errors.Wrap(err, "get config dir")
		}
		return "", errors.Wrap(homeErr, "get config dir")
	}

	return fallbackConfigDir(homeDir), nil
}

// AppConfigDir returns the per-application directory under ConfigDir.
func AppConfigDir(appName string) (string, error) {
	configDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appName), nil
}
