package iologger

import (
	"fmt"
	"runtime"
)

func CreateLogFileError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return fmt.Errorf("from %s: cannot create log file %s: %w",
		fn.Name(), path, err)
}
