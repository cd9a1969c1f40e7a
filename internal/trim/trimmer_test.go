package trim

import "testing"

func labelsOf(pattern ...struct{ label, count int }) []int {
	var out []int
	for _, p := range pattern {
		for i := 0; i < p.count; i++ {
			out = append(out, p.label)
		}
	}
	return out
}

func repeat(label, count int) struct{ label, count int } {
	return struct{ label, count int }{label, count}
}

func TestFindWindowAllSigning(t *testing.T) {
	labels := labelsOf(repeat(1, 50))

	window, outcome := FindWindow(labels, true, true, DefaultFramePadding)
	if outcome != OutcomeUntrimmed {
		t.Fatalf("Expected untrimmed outcome, got %v", outcome)
	}
	if window.Start != 0 || window.End != 49 {
		t.Errorf("Expected whole window (0, 49), got (%d, %d)", window.Start, window.End)
	}
}

func TestFindWindowBothBoundaries(t *testing.T) {
	labels := []int{0, 0, 0, 1, 1, 1, 1, 0, 0, 0}

	window, outcome := FindWindow(labels, true, true, 0)
	if outcome != OutcomeTrimmed {
		t.Fatalf("Expected trimmed outcome, got %v", outcome)
	}
	if window.Start != 3 || window.End != 6 {
		t.Errorf("Expected window (3, 6), got (%d, %d)", window.Start, window.End)
	}
}

func TestFindWindowGuardTriggersFallback(t *testing.T) {
	// a single waiting frame mid-clip is classifier noise; the resulting
	// near-no-op trim must route to the fallback, not be applied
	labels := labelsOf(repeat(1, 50), repeat(0, 1), repeat(1, 49))

	_, outcome := FindWindow(labels, true, true, DefaultFramePadding)
	if outcome != OutcomeFallback {
		t.Fatalf("Expected fallback outcome, got %v", outcome)
	}
}

func TestFindWindowRespectsFlags(t *testing.T) {
	labels := labelsOf(repeat(0, 10), repeat(1, 10), repeat(0, 10))

	tests := []struct {
		name      string
		trimStart bool
		trimEnd   bool
		wantStart int
		wantEnd   int
	}{
		{"both", true, true, 5, 24},
		{"start only", true, false, 5, 29},
		{"end only", false, true, 0, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, outcome := FindWindow(labels, tt.trimStart, tt.trimEnd, DefaultFramePadding)
			if outcome != OutcomeTrimmed {
				t.Fatalf("Expected trimmed outcome, got %v", outcome)
			}
			if window.Start != tt.wantStart || window.End != tt.wantEnd {
				t.Errorf("Expected window (%d, %d), got (%d, %d)",
					tt.wantStart, tt.wantEnd, window.Start, window.End)
			}
		})
	}
}

func TestFindWindowNeitherFlag(t *testing.T) {
	labels := labelsOf(repeat(0, 10), repeat(1, 10), repeat(0, 10))

	window, outcome := FindWindow(labels, false, false, DefaultFramePadding)
	if outcome != OutcomeUntrimmed {
		t.Fatalf("Expected untrimmed outcome, got %v", outcome)
	}
	if window.Start != 0 || window.End != 29 {
		t.Errorf("Expected whole window, got (%d, %d)", window.Start, window.End)
	}
}

func TestFindWindowInvertedBecomesUntrimmed(t *testing.T) {
	// an all-waiting middle clip trims both boundaries past each other;
	// the clip must come back whole, never empty or inverted
	labels := labelsOf(repeat(0, 20))

	window, outcome := FindWindow(labels, true, true, 5)
	if outcome != OutcomeUntrimmed {
		t.Fatalf("Expected untrimmed outcome, got %v", outcome)
	}
	if window.Start != 0 || window.End != 19 {
		t.Errorf("Expected whole window, got (%d, %d)", window.Start, window.End)
	}
}

func TestFindWindowClampsPadding(t *testing.T) {
	// padding larger than the leading run must clamp at frame zero
	labels := labelsOf(repeat(0, 3), repeat(1, 30), repeat(0, 10))

	window, outcome := FindWindow(labels, true, true, 5)
	if outcome != OutcomeTrimmed {
		t.Fatalf("Expected trimmed outcome, got %v", outcome)
	}
	if window.Start != 0 {
		t.Errorf("Expected start clamped to 0, got %d", window.Start)
	}
	if window.End != 37 {
		t.Errorf("Expected end 37, got %d", window.End)
	}
}

func TestFindWindowSingleFrame(t *testing.T) {
	window, outcome := FindWindow([]int{0}, true, true, 5)
	if outcome != OutcomeUntrimmed {
		t.Fatalf("Expected untrimmed outcome, got %v", outcome)
	}
	if window.Start != 0 || window.End != 0 {
		t.Errorf("Expected window (0, 0), got (%d, %d)", window.Start, window.End)
	}
}
