package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var multiSpaceRE = regexp.MustCompile(`\s+`)

// normaliseInput lowercases and strips punctuation. A minus sign or decimal
// point that belongs to a number survives so "shoot -3.5 4" keeps its
// offsets.
func normaliseInput(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ""
	}
	runes := []rune(raw)
	var b strings.Builder
	lastSpace := true
	for i, r := range runes {
		nextDigit := i+1 < len(runes) && unicode.IsDigit(runes[i+1])
		switch {
		case (r >= 'a' && r <= 'z') || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case r == '-' && lastSpace && nextDigit:
			b.WriteRune(r)
			lastSpace = false
		case r == '.' && !lastSpace && nextDigit && i > 0 && unicode.IsDigit(runes[i-1]):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '/' || r == '\'' || r == ',':
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimSpace(multiSpaceRE.ReplaceAllString(b.String(), " "))
}

func tokenise(normalised string) []string {
	if strings.TrimSpace(normalised) == "" {
		return nil
	}
	return strings.Fields(normalised)
}

var durationSuffixes = []struct {
	unit     string
	suffixes []string
}{
	{unit: "seconds", suffixes: []string{"seconds", "secs", "sec", "s"}},
	{unit: "minutes", suffixes: []string{"minutes", "mins", "min", "m"}},
}

func parseQuantityToken(token string) *Quantity {
	token = strings.TrimSpace(strings.ToLower(token))
	if token == "" {
		return nil
	}
	if token == "all" {
		return &Quantity{Raw: token, N: -1, Unit: "all"}
	}
	if n, err := strconv.Atoi(token); err == nil && n >= 0 {
		return &Quantity{Raw: token, N: n, Unit: "count"}
	}
	for _, d := range durationSuffixes {
		for _, suffix := range d.suffixes {
			if !strings.HasSuffix(token, suffix) {
				continue
			}
			if v, err := strconv.Atoi(strings.TrimSuffix(token, suffix)); err == nil && v >= 0 {
				return &Quantity{Raw: token, N: v, Unit: d.unit}
			}
		}
	}
	return nil
}

func isPronoun(token string) bool {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "it", "that", "them", "this", "those":
		return true
	default:
		return false
	}
}

func mapDirection(token string) string {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "n", "north", "up":
		return "north"
	case "s", "south", "down":
		return "south"
	case "e", "east", "right":
		return "east"
	case "w", "west", "left":
		return "west"
	default:
		return ""
	}
}
