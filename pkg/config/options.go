package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptTaxidStore sets the path of the SQLite gi->taxid store.
func OptTaxidStore(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Taxid Store", s) {
			c.Taxid.Store = s
		}
	}
}

// OptTaxidDump sets the path of the gi_taxid dump file used to build
// the store. Runtime-only field - not in ToOptions().
func OptTaxidDump(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Taxid Dump", s) {
			c.Taxid.Dump = s
		}
	}
}

// OptTaxidBatchSize sets the number of dump rows inserted per
// transaction during the store build.
func OptTaxidBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Taxid.BatchSize = i
		}
	}
}

// OptEntrezBaseURL sets the NCBI E-utils endpoint prefix.
func OptEntrezBaseURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Entrez Base URL", s) {
			c.Entrez.BaseURL = strings.TrimSuffix(s, "/")
		}
	}
}

// OptEntrezTimeout sets the per-request timeout for E-utils lookups,
// in seconds.
func OptEntrezTimeout(i int) Option {
	return func(c *Config) {
		if isValidInt("Entrez Timeout", i) {
			c.Entrez.TimeoutSec = i
		}
	}
}

// OptMappingsPattern sets the glob used to find reference sequence
// files.
func OptMappingsPattern(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Mappings Pattern", s) {
			c.Mappings.Pattern = s
		}
	}
}

// OptMappingsOutfile sets the output path for header->taxid pairs.
func OptMappingsOutfile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Mappings Outfile", s) {
			c.Mappings.Outfile = s
		}
	}
}

// OptProteoDBFile sets the path of the proteotyping database file.
func OptProteoDBFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Proteo DB File", s) {
			c.Proteo.DBFile = s
		}
	}
}

// OptProteoPattern sets the glob used to find annotation files.
func OptProteoPattern(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Proteo Pattern", s) {
			c.Proteo.Pattern = s
		}
	}
}

// OptProteoTaxonomyVer records the NCBI Taxonomy release used for the
// database. Runtime-only field - not in ToOptions().
func OptProteoTaxonomyVer(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.Proteo.TaxonomyVer = s
	}
}

// OptProteoRefseqVer records the RefSeq release used for the database.
// Runtime-only field - not in ToOptions().
func OptProteoRefseqVer(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.Proteo.RefseqVer = s
	}
}

// OptProteoComment sets the free-text comment stored in the version
// table. Runtime-only field - not in ToOptions().
func OptProteoComment(s string) Option {
	return func(c *Config) {
		c.Proteo.Comment = s
	}
}

// OptProteoDumpFile requests a gzipped SQL dump at the given path after
// the database is built. Runtime-only field - not in ToOptions().
func OptProteoDumpFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Proteo Dump File", s) {
			c.Proteo.DumpFile = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptLogFile routes logs to an explicit file path instead of the
// console. Also switches Destination to "file".
// Runtime-only field - not in ToOptions().
func OptLogFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Log File", s) {
			c.Log.File = s
			c.Log.Destination = "file"
		}
	}
}

// OptHomeDir sets the home directory for config and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
