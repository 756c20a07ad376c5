// Package iotesting provides shared test utilities.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"path/filepath"
	"testing"

	"github.com/proteotype/proteodb/pkg/config"
)

// TempHome points HOME at a fresh temporary directory, so tests that
// bootstrap the application cannot touch the caller's real
// configuration and log directories. The override is undone when the
// test finishes.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    home := iotesting.TempHome(t)
//	    // run commands; config lands under home
//	}
func TempHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

// ConfigPath returns the path where the application writes its config
// file under the given test home.
func ConfigPath(home string) string {
	return config.ConfigFilePath(home)
}

// LogPath returns the default log file path under the given test home.
func LogPath(home string) string {
	return filepath.Join(config.LogDir(home), "proteodb.log")
}
