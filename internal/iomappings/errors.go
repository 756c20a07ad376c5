package iomappings

import "fmt"

func ParseMappingError(line int, text string) error {
	return fmt.Errorf(
		"mappings line %d: cannot parse %q as header taxid pair",
		line, text)
}
