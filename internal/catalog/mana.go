package catalog

import (
	"regexp"
	"sort"
)

var colorSymbolRe = regexp.MustCompile(`[WUBRG]`)

// ParseManaCost extracts the distinct colors from a mana cost string.
// Example: "{2}{W}{W}{U}" -> ["U", "W"]
// Example: "{W/U}" -> ["U", "W"]
func ParseManaCost(manaCost string) []string {
	if manaCost == "" {
		return []string{}
	}

	matches := colorSymbolRe.FindAllString(manaCost, -1)

	colorMap := make(map[string]bool)
	for _, color := range matches {
		colorMap[color] = true
	}

	colors := make([]string, 0, len(colorMap))
	for color := range colorMap {
		colors = append(colors, color)
	}
	sort.Strings(colors)

	return colors
}

// CountPips counts each colored mana symbol occurrence in a mana cost.
// Example: "{1}{W}{W}" -> {"W": 2}
func CountPips(manaCost string) map[string]int {
	pips := make(map[string]int)
	for _, symbol := range colorSymbolRe.FindAllString(manaCost, -1) {
		pips[symbol]++
	}
	return pips
}
