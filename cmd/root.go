/*
Copyright © 2025 Fredrik Boulund <fredrik.boulund@chalmers.se>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/proteotype/proteodb/internal/iofs"
	"github.com/proteotype/proteodb/internal/iologger"
	"github.com/proteotype/proteodb/pkg/config"
	"github.com/proteotype/proteodb/pkg/proteodb"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir  string
	cfg      *config.Config
	cfgFile  string
	logLevel string
	logFile  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: fmt.Sprintf("version: %s\nbuild:   %s",
		proteodb.Version, proteodb.Build),
	Use:   "proteodb",
	Short: "proteodb prepares proteotyping databases from NCBI reference data",
	Long: `proteodb prepares the SQLite databases used by the proteotyping
pipeline, which identifies organisms in a sample from peptide mass spectra
matched against bacterial reference genomes.

The preparation runs in two phases:
  - mappings: resolve reference sequence headers to NCBI taxids
  - create: graft proteotyping tables onto a taxonomy database and fill
    them with reference sequences, gene records, and annotations

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (PROTEODB_*)
  3. Config file (~/.config/proteodb/config.yaml)
  4. Built-in defaults`,
	PersistentPreRunE: bootstrap,
	RunE:              runRoot,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		return err
	}

	// Initialize logging with hardcoded defaults.
	// Will be reconfigured later with user's config settings.
	defaultLog := config.LogConfig{
		Format:      "text",
		Level:       "info",
		Destination: "stderr",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		return err
	}

	// An explicitly given config file must exist; only the default one
	// is generated on first run.
	if cfgFile == "" {
		if err = iofs.EnsureConfigFile(homeDir); err != nil {
			return err
		}
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		return err
	}

	cfg = config.New()
	cfg.Update(cfgViper.ToOptions())

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Flags beat config file and environment.
	if logLevel != "" {
		cfg.Update([]config.Option{config.OptLogLevel(logLevel)})
	}
	if logFile != "" {
		cfg.Update([]config.Option{
			config.OptLogDestination("file"),
			config.OptLogFile(logFile),
		})
	}

	// Reconfigure logging with user's settings and proper log file
	// location.
	if err = reconfigureLogging(cfg); err != nil {
		return err
	}

	slog.Debug("Configuration loaded",
		"config_file", configPath(homeDir))

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded
// configuration.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log)
}

func runRoot(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func init() {
	// Remove the automatic "proteodb version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V
	rootCmd.Flags().BoolP("version", "V", false, "version for proteodb")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.config/proteodb/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "loglevel", "",
		"log level: debug, info, warn, or error")
	rootCmd.PersistentFlags().StringVar(&logFile, "logfile", "",
		"write logs to this file instead of the console")

	rootCmd.AddCommand(getMappingsCmd())
	rootCmd.AddCommand(getCreateCmd())
}

func configPath(home string) string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.ConfigFilePath(home)
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := configPath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables
	// are allowed. These match the fields included in
	// config.ToOptions() - i.e., persistent configuration that can be
	// stored in config.yaml.
	v.SetEnvPrefix("PROTEODB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Taxid store configuration
	v.BindEnv("taxid.store")
	v.BindEnv("taxid.batch_size")

	// Entrez fallback configuration
	v.BindEnv("entrez.base_url")
	v.BindEnv("entrez.timeout_sec")

	// Mappings command configuration
	v.BindEnv("mappings.pattern")
	v.BindEnv("mappings.outfile")

	// Create command configuration
	v.BindEnv("proteo.db_file")
	v.BindEnv("proteo.pattern")

	// Log configuration
	v.BindEnv("log.level")
	v.BindEnv("log.format")
	v.BindEnv("log.destination")

	v.AutomaticEnv()
}
