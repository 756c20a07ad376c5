package ioentrez

import "errors"

// ErrTaxidNotFound means the remote service had no usable taxid for
// the accession, or could not be reached within the timeout.
var ErrTaxidNotFound = errors.New("no taxid found for accession")
