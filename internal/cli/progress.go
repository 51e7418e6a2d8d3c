// Package cli provides progress output for batch derivation.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/opencode-ai/palette/internal/palette"
)

type batchProgress struct {
	out     io.Writer
	started time.Time
}

// startBatchProgress announces a batch on out. It returns nil when progress
// output is disabled; the nil value is safe to use.
func startBatchProgress(out io.Writer, total int) *batchProgress {
	if !progressEnabled() {
		return nil
	}
	noun := "palettes"
	if total == 1 {
		noun = "palette"
	}
	fmt.Fprintf(out, "Deriving %d %s... ", total, noun)
	return &batchProgress{out: out, started: time.Now()}
}

// Done reports how the colors in results fared.
func (p *batchProgress) Done(results []palette.Result) {
	if p == nil {
		return
	}
	t := tallyResults(results)
	fmt.Fprintf(p.out, "done in %s: %d passed, %d fixed, %d unresolved\n",
		formatDuration(time.Since(p.started)), t.passed, t.fixed, t.unresolved)
}

func (p *batchProgress) Fail(err error) {
	if p == nil {
		return
	}
	fmt.Fprintf(p.out, "failed: %v\n", err)
}

type resultTally struct {
	passed     int
	fixed      int
	unresolved int
}

// tallyResults counts primary and secondary colors by outcome.
func tallyResults(results []palette.Result) resultTally {
	var t resultTally
	for _, res := range results {
		for _, adj := range []palette.Adjustment{res.PrimaryAdjustment, res.SecondaryAdjustment} {
			switch {
			case !adj.Resolved:
				t.unresolved++
			case adj.Adjusted():
				t.fixed++
			default:
				t.passed++
			}
		}
	}
	return t
}

func progressEnabled() bool {
	if IsJSONOutput() || IsJSONLOutput() || noProgress {
		return false
	}
	_, ok := os.LookupEnv("PALETTE_NO_PROGRESS")
	return !ok
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}
