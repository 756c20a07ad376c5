package iofs

import (
	"fmt"
	"runtime"
)

func CreateDirError(dir string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return fmt.Errorf("from %s: cannot create directory %s: %w",
		fn.Name(), dir, err)
}

func CopyFileError(file string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return fmt.Errorf("from %s: cannot copy file to %s: %w",
		fn.Name(), file, err)
}

func ReadFileError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return fmt.Errorf("from %s: cannot read %s: %w",
		fn.Name(), path, err)
}
