package ioproteo

import "fmt"

func ParseGeneInfoError(line int, text string) error {
	return fmt.Errorf("gene_info line %d: cannot parse %q as gene record",
		line, text)
}

func HeaderNotFoundError(ident string) error {
	return fmt.Errorf("no refseq header contains %q", ident)
}

func AmbiguousHeaderError(ident string) error {
	return fmt.Errorf("multiple refseq headers contain %q", ident)
}
