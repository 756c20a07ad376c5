package iotaxid

import (
	"errors"
	"fmt"
)

// ErrNoDumpFile is returned when no store file exists and no dump file
// was given to build one from.
var ErrNoDumpFile = errors.New(
	"gi_taxid dump file required to create new taxid store")

func ParseDumpError(line int, text string) error {
	return fmt.Errorf("dump line %d: cannot parse %q as gi taxid pair",
		line, text)
}
