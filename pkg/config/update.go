package config

import (
	"log/slog"
	"slices"

	"golang.org/x/exp/maps"
	"strings"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, Taxid.Dump, Proteo version
// flags, Log.File).
// Used for round-tripping config.yaml <-> Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int
	s = c.Taxid.Store
	if s != "" {
		res = append(res, OptTaxidStore(s))
	}
	i = c.Taxid.BatchSize
	if i > 0 {
		res = append(res, OptTaxidBatchSize(i))
	}

	s = c.Entrez.BaseURL
	if s != "" {
		res = append(res, OptEntrezBaseURL(s))
	}
	i = c.Entrez.TimeoutSec
	if i > 0 {
		res = append(res, OptEntrezTimeout(i))
	}

	s = c.Mappings.Pattern
	if s != "" {
		res = append(res, OptMappingsPattern(s))
	}
	s = c.Mappings.Outfile
	if s != "" {
		res = append(res, OptMappingsOutfile(s))
	}

	s = c.Proteo.DBFile
	if s != "" {
		res = append(res, OptProteoDBFile(s))
	}
	s = c.Proteo.Pattern
	if s != "" {
		res = append(res, OptProteoPattern(s))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		slog.Warn("Option cannot be empty, ignoring", "option", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		slog.Warn("Option has to be a positive number, ignoring",
			"option", name, "value", i)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	vals := maps.Keys(data[name])
	slices.Sort(vals)
	slog.Warn("Option does not support value, ignoring",
		"option", name, "value", val,
		"valid", strings.Join(vals, ", "),
	)
	return false
}
