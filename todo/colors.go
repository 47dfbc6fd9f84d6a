package todo

import (
	"sort"
	"strconv"
)

// Palette holds the tag chip background colors. Later entries repeat
// earlier hues.
var Palette = []string{
	"#f5e0dc", "#f2cdcd", "#f5c2e7", "#cba6f7", "#f38ba8", "#eba0ac", "#fab387", "#f9e2af", "#a6e3a1", "#94e2d5",
	"#89dceb", "#74c7ec", "#89b4fa", "#b4befe", "#cdd6f4", "#bac2de", "#a6adc8", "#9399b2", "#7f849c", "#6c7086",
	"#f5c2e7", "#cba6f7", "#f38ba8", "#eba0ac", "#fab387", "#f9e2af", "#a6e3a1", "#94e2d5", "#89dceb", "#74c7ec",
}

const (
	darkText  = "#1e1e2e"
	lightText = "#cdd6f4"
)

// TagColors is the rendering of one tag chip.
type TagColors struct {
	Background string
	Foreground string
}

// ReconcileTagColors returns a color map covering exactly tags. Tags already
// in old keep their slot. Each new tag takes the lowest palette slot no
// other tag uses; once the palette is exhausted slots are reused in
// rotation. old is not modified.
func ReconcileTagColors(old map[string]int, tags []string) map[string]int {
	sorted := append([]string(nil), tags...)
	sort.Strings(sorted)

	next := make(map[string]int, len(sorted))
	used := make(map[int]bool, len(sorted))
	for _, tag := range sorted {
		if slot, ok := old[tag]; ok && slot >= 0 && slot < len(Palette) && !used[slot] {
			next[tag] = slot
			used[slot] = true
		}
	}
	for _, tag := range sorted {
		if _, ok := next[tag]; ok {
			continue
		}
		slot := lowestFreeSlot(used)
		if slot < 0 {
			slot = len(next) % len(Palette)
		}
		next[tag] = slot
		used[slot] = true
	}
	return next
}

func lowestFreeSlot(used map[int]bool) int {
	for slot := range Palette {
		if !used[slot] {
			return slot
		}
	}
	return -1
}

// ColorsForTag returns the chip colors for tag. Unknown tags use slot 0.
// The foreground is dark on light backgrounds and light on dark ones.
func ColorsForTag(tag string, colorMap map[string]int) TagColors {
	slot := colorMap[tag]
	if slot < 0 {
		slot = 0
	}
	background := Palette[slot%len(Palette)]
	foreground := lightText
	if luminance(background) > 0.5 {
		foreground = darkText
	}
	return TagColors{Background: background, Foreground: foreground}
}

func luminance(hex string) float64 {
	if len(hex) != 7 || hex[0] != '#' {
		return 0
	}
	channel := func(s string) float64 {
		v, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			return 0
		}
		return float64(v)
	}
	r, g, b := channel(hex[1:3]), channel(hex[3:5]), channel(hex[5:7])
	return (0.299*r + 0.587*g + 0.114*b) / 255
}
