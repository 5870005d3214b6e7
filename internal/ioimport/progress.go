package ioimport

import (
	"github.com/cheggaaa/pb/v3"
)

// newProgressBar creates a progress bar over total bytes.
func newProgressBar(
	total int64,
	prefix string,
) *pb.ProgressBar {
	bar := pb.Full.Start64(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.Bytes, true)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
