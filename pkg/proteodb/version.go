// Package proteodb defines the public contracts of the proteotyping
// database preparation tool. Implementations live in internal/io*
// packages; this package stays free of I/O.
package proteodb

var (
	// Version is the application version. It is set during the
	// compilation process.
	Version = "v0.0.1"
	// Build is a timestamp of the compilation. It is set during the
	// compilation process.
	Build = "n/a"
)
