package config

import (
	"path/filepath"
)

// AppName names the application in file system paths.
var AppName = "proteodb"

// ConfigDir is where the config file lives, ~/.config/proteodb.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// LogDir is where log files go, ~/.local/share/proteodb/logs.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath points at the config.yaml inside ConfigDir.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}
