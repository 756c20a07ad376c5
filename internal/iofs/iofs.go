// Package iofs prepares the on-disk home layout of proteodb (config and
// log directories, default config file) and locates reference and
// annotation files under a directory tree.
package iofs

import (
	_ "embed"
	"errors"
	"os"

	"github.com/proteotype/proteodb/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates the proteodb config and log directories under
// homeDir. A path that exists as something other than a directory is
// reported instead of silently reused.
func EnsureDirs(homeDir string) error {
	for _, dir := range []string{
		config.ConfigDir(homeDir),
		config.LogDir(homeDir),
	} {
		info, err := os.Stat(dir)
		if err == nil {
			if info.IsDir() {
				continue
			}
			return CreateDirError(dir,
				errors.New("path exists and is not a directory"))
		}
		if err = os.MkdirAll(dir, 0755); err != nil {
			return CreateDirError(dir, err)
		}
	}
	return nil
}

// EnsureConfigFile writes the embedded default config.yaml into the
// config directory. An existing config file is left untouched so user
// edits survive upgrades.
func EnsureConfigFile(homeDir string) error {
	path := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(path, err)
	}
	return nil
}
