package components

import "testing"

func TestSparkline(t *testing.T) {
	data := []uint64{0, 25, 50, 75, 100, 50, 25, 0}
	result := Sparkline(data, 8, 0)
	if len([]rune(result)) != 8 {
		t.Errorf("expected 8 chars, got %d", len([]rune(result)))
	}
}

func TestSparklineEmpty(t *testing.T) {
	result := Sparkline(nil, 8, 0)
	if result != "        " {
		t.Errorf("expected 8 spaces for empty data, got %q", result)
	}
}

func TestSparklinePadsShortSeries(t *testing.T) {
	result := Sparkline([]uint64{50}, 4, 0)
	runes := []rune(result)
	if len(runes) != 4 {
		t.Fatalf("expected 4 chars, got %d", len(runes))
	}
	for i := 0; i < 3; i++ {
		if runes[i] != ' ' {
			t.Errorf("expected leading padding, got %q", result)
		}
	}
}

func TestSparklineSharedScale(t *testing.T) {
	// At half of the shared max the block should land mid-ramp, not at the
	// top.
	result := Sparkline([]uint64{50}, 1, 100)
	if []rune(result)[0] == blocks[len(blocks)-1] {
		t.Error("half-scale value should not render the tallest block")
	}
	full := Sparkline([]uint64{100}, 1, 100)
	if []rune(full)[0] != blocks[len(blocks)-1] {
		t.Error("full-scale value should render the tallest block")
	}
}

func TestSeriesMax(t *testing.T) {
	if got := SeriesMax([]uint64{1, 7, 3}, []uint64{2, 5}); got != 7 {
		t.Errorf("SeriesMax = %d, want 7", got)
	}
	if got := SeriesMax(nil, nil); got != 0 {
		t.Errorf("SeriesMax of empty series = %d, want 0", got)
	}
}
