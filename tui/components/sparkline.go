package components

import "strings"

var blocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders rate history as unicode block characters, right-aligned
// within width. Values scale against max so upload and download lines share
// one axis; a zero max falls back to the series' own peak.
func Sparkline(data []uint64, width int, max uint64) string {
	if len(data) == 0 {
		return strings.Repeat(" ", width)
	}
	if len(data) > width {
		data = data[len(data)-width:]
	}
	if max == 0 {
		for _, v := range data {
			if v > max {
				max = v
			}
		}
	}

	var sb strings.Builder
	for i := 0; i < width-len(data); i++ {
		sb.WriteRune(' ')
	}
	for _, v := range data {
		if max == 0 {
			sb.WriteRune(blocks[0])
			continue
		}
		idx := int(float64(v) / float64(max) * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		sb.WriteRune(blocks[idx])
	}
	return sb.String()
}

// SeriesMax returns the larger peak of two series, for a shared sparkline axis.
func SeriesMax(a, b []uint64) uint64 {
	var max uint64
	for _, v := range a {
		if v > max {
			max = v
		}
	}
	for _, v := range b {
		if v > max {
			max = v
		}
	}
	return max
}
