// Package trim decides which frame range of a clip is actively signing,
// based on per-frame binary labels (1 = signing, 0 = waiting).
package trim

import "math"

// DefaultFramePadding is the number of waiting frames kept next to a trim
// boundary so transitions stay natural
const DefaultFramePadding = 5

// guardRatio: a trim retaining more than this share of the clip removed
// almost nothing and is likely classifier noise, so the caller should fall
// back to the confidence-based trim instead
const guardRatio = 0.95

// Window is the inclusive frame-index range to retain from one clip
type Window struct {
	Start int
	End   int
}

// Outcome describes which trim policy applies
type Outcome int

const (
	// OutcomeTrimmed means the window was derived from the labels
	OutcomeTrimmed Outcome = iota
	// OutcomeUntrimmed means the clip must be kept whole
	OutcomeUntrimmed
	// OutcomeFallback means the label-based trim was implausibly small and
	// the confidence-based trim should be used instead
	OutcomeFallback
)

// run is a maximal stretch of consecutive equal labels
type run struct {
	label int
	start int
	end   int
}

// FindWindow computes the trim boundaries for one clip from its frame
// labels. Waiting runs touching the clip boundaries define the trim: the
// leading run moves the start, the trailing run moves the end, and padding
// keeps that many waiting frames next to each moved boundary. Without any
// waiting run the clip stays whole.
func FindWindow(labels []int, trimStart, trimEnd bool, padding int) (Window, Outcome) {
	n := len(labels)
	whole := Window{Start: 0, End: n - 1}
	if n <= 1 || (!trimStart && !trimEnd) {
		return whole, OutcomeUntrimmed
	}

	runs := encodeRuns(labels)
	hasWaiting := false
	for _, r := range runs {
		if r.label == 0 {
			hasWaiting = true
			break
		}
	}
	if !hasWaiting {
		return whole, OutcomeUntrimmed
	}

	start := 0
	end := n - 1
	if trimStart && runs[0].label == 0 {
		start = runs[0].end + 1 - padding
	}
	if trimEnd && runs[len(runs)-1].label == 0 {
		end = runs[len(runs)-1].start - 1 + padding
	}

	if start < 0 {
		start = 0
	}
	if end > n-1 {
		end = n - 1
	}

	// a near-no-op trim means the waiting frames sit mid-clip, which is the
	// classifier misfiring, not the signer idling
	if float64(end-start) > math.Floor(guardRatio*float64(n)) {
		return whole, OutcomeFallback
	}

	if end <= start {
		return whole, OutcomeUntrimmed
	}

	return Window{Start: start, End: end}, OutcomeTrimmed
}

func encodeRuns(labels []int) []run {
	var runs []run
	for i, label := range labels {
		if len(runs) > 0 && runs[len(runs)-1].label == label {
			runs[len(runs)-1].end = i
			continue
		}
		runs = append(runs, run{label: label, start: i, end: i})
	}
	return runs
}
