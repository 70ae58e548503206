package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
)

const settingsFile = "settings.json"

// Settings are the persisted tracker settings. DataLocation, when set,
// redirects the frames file to another directory.
type Settings struct {
	DataLocation string `json:"data_location,omitempty"`
}

// LoadSettings reads the settings file under root. A missing or empty
// file yields zero settings.
func LoadSettings(root string) (Settings, error) {
	path := filepath.Join(root, settingsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return Settings{}, nil
	}

	var s Settings
	if err := sonic.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("%w: %s: %v", ErrCorruptStore, path, err)
	}
	return s, nil
}

// SaveSettings writes the settings file under root.
func SaveSettings(root string, s Settings) error {
	data, err := sonic.ConfigDefault.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	path := filepath.Join(root, settingsFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file %s: %w", path, err)
	}
	return nil
}

// ClearSettings resets the settings file under root to defaults.
func ClearSettings(root string) error {
	return SaveSettings(root, Settings{})
}
