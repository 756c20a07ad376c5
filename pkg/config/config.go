// Package config provides configuration management for proteodb.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may log warnings via slog.
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with a warning - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Taxid: store, batch_size
//   - Entrez: base_url, timeout_sec
//   - Mappings: pattern, outfile
//   - Proteo: db_file, pattern
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags and positional arguments only):
//   - Taxid.Dump (positional argument of the mappings command)
//   - Proteo.TaxonomyVer, RefseqVer, Comment, DumpFile (per-command flags)
//   - Log.File (explicit --logfile path)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use PROTEODB_ prefix with underscores for nesting:
//
//	PROTEODB_TAXID_STORE=/data/gi_taxid.db
//	PROTEODB_TAXID_BATCH_SIZE=200000
//	PROTEODB_LOG_LEVEL=debug
package config

// Config represents the complete proteodb configuration.
type Config struct {
	// Taxid contains settings for the gi->taxid lookup store.
	Taxid TaxidConfig `mapstructure:"taxid" yaml:"taxid"`

	// Entrez contains settings for the NCBI E-utils fallback lookups.
	Entrez EntrezConfig `mapstructure:"entrez" yaml:"entrez"`

	// Mappings contains settings specific to the mappings command.
	Mappings MappingsConfig `mapstructure:"mappings" yaml:"mappings"`

	// Proteo contains settings specific to the create command.
	Proteo ProteoConfig `mapstructure:"proteo" yaml:"proteo"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// TaxidConfig contains settings for the persistent gi->taxid store.
type TaxidConfig struct {
	// Store is the path of the SQLite file holding the gi_taxid table.
	// If the file exists it is opened as-is; otherwise it is built from
	// the Dump file.
	Store string `mapstructure:"store" yaml:"store"`

	// BatchSize is the number of dump rows inserted per transaction
	// during the one-time store build. Larger batches are faster but
	// lose more rows if the build is interrupted mid-batch.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// Dump is the path to the two-column gi_taxid dump file.
	// Runtime-only: supplied as a positional argument.
	Dump string
}

// EntrezConfig contains settings for NCBI Entrez E-utils requests.
type EntrezConfig struct {
	// BaseURL is the E-utils endpoint prefix, without the trailing
	// efetch.fcgi part.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// TimeoutSec bounds one efetch round trip. A timed-out request is
	// treated as "no mapping found" for that record.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// MappingsConfig contains settings specific to the mappings command.
type MappingsConfig struct {
	// Pattern is the shell glob used to find reference sequence files
	// under the reference directory.
	Pattern string `mapstructure:"pattern" yaml:"pattern"`

	// Outfile is the destination for header->taxid pairs.
	Outfile string `mapstructure:"outfile" yaml:"outfile"`
}

// ProteoConfig contains settings specific to the create command.
type ProteoConfig struct {
	// DBFile is the path of the SQLite taxonomy database that receives
	// the proteotyping tables.
	DBFile string `mapstructure:"db_file" yaml:"db_file"`

	// Pattern is the shell glob used to find annotation files under the
	// annotations directory.
	Pattern string `mapstructure:"pattern" yaml:"pattern"`

	// TaxonomyVer records which NCBI Taxonomy release was used.
	// Runtime-only flag.
	TaxonomyVer string

	// RefseqVer records which RefSeq release was used. Runtime-only flag.
	RefseqVer string

	// Comment is a free-text note stored in the version table.
	// Runtime-only flag.
	Comment string

	// DumpFile, when non-empty, requests a gzipped SQL dump of the
	// finished database at the given path. Runtime-only flag.
	DumpFile string
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
	// File overrides the default log file location when Destination is
	// "file". Runtime-only: set by the --logfile flag.
	File string
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Taxid: TaxidConfig{
			Store: "gi_taxid.db",
			// One-time build of tens of millions of rows; one
			// commit per batch.
			BatchSize: 200_000,
		},
		Entrez: EntrezConfig{
			BaseURL:    "https://eutils.ncbi.nlm.nih.gov/entrez/eutils",
			TimeoutSec: 10,
		},
		Mappings: MappingsConfig{
			Pattern: "*.fna",
			Outfile: "header_taxid_mappings.tab",
		},
		Proteo: ProteoConfig{
			DBFile:  "proteodb.sql",
			Pattern: "*.gff",
		},
		Log: LogConfig{
			Format: "text",
			// Runs are long and resolution gaps matter, so default
			// to the most talkative level.
			Level:       "debug",
			Destination: "stderr",
		},
	}

	return res
}
