package ioproteo

import (
	"github.com/cheggaaa/pb/v3"
)

// newProgressBar creates a new progress bar with consistent
// settings for a known number of items.
func newProgressBar(
	total int,
	prefix string,
) *pb.ProgressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}

// newByteProgressBar creates a progress bar that tracks bytes read
// from a file of known size, for inputs whose record count is unknown
// upfront.
func newByteProgressBar(
	size int64,
	prefix string,
) *pb.ProgressBar {
	bar := pb.Full.Start64(size)
	bar.Set(pb.Bytes, true)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
