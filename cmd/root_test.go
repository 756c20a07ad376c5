package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/proteotype/proteodb/internal/iotesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRootCmd_Exists verifies the root command identity.
func TestRootCmd_Exists(t *testing.T) {
	require.NotNil(t, rootCmd, "Root command should exist")
	assert.Equal(t, "proteodb", rootCmd.Use,
		"Command name should be proteodb")
}

// TestRootCmd_VersionFormat verifies -V output format.
func TestRootCmd_VersionFormat(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"-V"})

	// Reset for other tests sharing the package-level command.
	t.Cleanup(func() {
		_ = rootCmd.Flags().Set("version", "false")
	})

	err := rootCmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "version:",
		"Version output should contain version")
	assert.Contains(t, output, "build:",
		"Version output should contain build")
}

// TestRootCmd_HelpText verifies help text content.
func TestRootCmd_HelpText(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"--help"})

	// Reset for other tests sharing the package-level command.
	t.Cleanup(func() {
		_ = rootCmd.Flags().Set("help", "false")
	})

	err := rootCmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "proteodb",
		"Help should mention proteodb")
	assert.Contains(t, helpText, "mappings",
		"Help should list the mappings command")
	assert.Contains(t, helpText, "create",
		"Help should list the create command")
}

// TestRootCmd_PersistentFlags verifies flags shared by all
// subcommands.
func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "loglevel", "logfile"} {
		flag := rootCmd.PersistentFlags().Lookup(name)
		assert.NotNil(t, flag, "--%s flag should exist", name)
	}
}

// TestRootCmd_BareInvocation verifies that running without a
// subcommand bootstraps the environment and prints usage without
// an error.
func TestRootCmd_BareInvocation(t *testing.T) {
	home := iotesting.TempHome(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{})

	err := rootCmd.Execute()
	require.NoError(t, err,
		"bare invocation should print usage, not fail")

	assert.Contains(t, buf.String(), "Usage:")

	// First run generates the default config file.
	assert.FileExists(t, iotesting.ConfigPath(home))
}

// TestRootCmd_MissingConfigFile verifies that an explicitly given
// config file must exist.
func TestRootCmd_MissingConfigFile(t *testing.T) {
	home := iotesting.TempHome(t)

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{
		"--config", filepath.Join(home, "absent.yaml"),
	})

	err := rootCmd.Execute()
	assert.Error(t, err,
		"explicit config path must not be generated on the fly")

	// Reset for other tests sharing the package-level command.
	cfgFile = ""
	_, err = os.Stat(filepath.Join(home, ".config"))
	assert.NoError(t, err, "bootstrap should still have made the dirs")
}
