package rebatch

import (
	"github.com/arthur-debert/rebatch/pkg/transfer"
	"github.com/schollz/progressbar/v3"
)

// newProgress returns a progress callback that draws a bar on stderr, sized
// on the first call, and a func that completes the bar. Calling it twice is harmless.
func newProgress(description string) (transfer.ProgressFunc, func()) {
	var bar *progressbar.ProgressBar

	progress := func(done, total int) {
		if bar == nil {
			bar = progressbar.Default(int64(total), description)
		}
		_ = bar.Set(done)
	}
	finish := func() {
		if bar != nil {
			_ = bar.Finish()
			bar = nil
		}
	}
	return progress, finish
}
