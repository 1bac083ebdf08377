package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// ColumnKey turns a column caption like "country of birth" into
// "country_of_birth". Single spaces become underscores, so a
// double space becomes a double underscore.
func ColumnKey(text string) string {
	return strings.ReplaceAll(strings.ToLower(text), " ", "_")
}

// NormalizeName is used for loose comparisons between labels coming
// from different tables.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, " ")
	return name
}

func MatchName(name string, candidates []string) (string, bool) {
	name = NormalizeName(name)
	for _, c := range candidates {
		if NormalizeName(c) == name {
			return c, true
		}
	}
	return "", false
}

// WrapFunc greedily fills lines with words for as long as fits accepts
// the line.
func WrapFunc(text string, fits func(line string) bool) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		candidate := current + " " + w
		if !fits(candidate) {
			lines = append(lines, current)
			current = w
			continue
		}
		current = candidate
	}
	return append(lines, current)
}
