package pxweb

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

const filterItem = "item"

// QueryWarning describes a selected variable or value the table does not
// know about.
type QueryWarning struct {
	Code       string
	Value      string
	Suggestion string
}

func (w QueryWarning) String() string {
	var msg string
	if w.Value == "" {
		msg = fmt.Sprintf("unknown variable %q", w.Code)
	} else {
		msg = fmt.Sprintf("unknown value %q for variable %q", w.Value, w.Code)
	}
	if w.Suggestion != "" {
		msg += fmt.Sprintf(", did you mean %q?", w.Suggestion)
	}
	return msg
}

// BuildQuery selects values for every variable of a table. Variables
// named in selected keep only their valid values, in the selected order,
// and are left out when none survive. Other variables are queried in
// full when the table allows eliminating them and left out otherwise.
func BuildQuery(meta Metadata, selected map[string][]string) (Query, []QueryWarning) {
	query := Query{
		Query:    []Selection{},
		Response: ResponseFormat{Format: "json"},
	}
	var warnings []QueryWarning

	for _, variable := range meta.Variables {
		values, ok := selected[variable.Code]
		if ok {
			valid := make([]string, 0, len(values))
			for _, v := range values {
				if slices.Contains(variable.Values, v) {
					valid = append(valid, v)
					continue
				}
				warnings = append(warnings, QueryWarning{
					Code:       variable.Code,
					Value:      v,
					Suggestion: suggestValue(variable, v),
				})
			}
			if len(valid) > 0 {
				query.Query = append(query.Query, Selection{
					Code:      variable.Code,
					Selection: Filter{Filter: filterItem, Values: valid},
				})
			}
			continue
		}
		if variable.Elimination {
			query.Query = append(query.Query, Selection{
				Code:      variable.Code,
				Selection: Filter{Filter: filterItem, Values: slices.Clone(variable.Values)},
			})
		}
	}

	codes := make([]string, len(meta.Variables))
	for i, v := range meta.Variables {
		codes[i] = v.Code
	}
	var unknown []string
	for code := range selected {
		if !slices.Contains(codes, code) {
			unknown = append(unknown, code)
		}
	}
	sort.Strings(unknown)
	for _, code := range unknown {
		warnings = append(warnings, QueryWarning{
			Code:       code,
			Suggestion: closest(code, codes),
		})
	}

	return query, warnings
}

func suggestValue(variable Variable, value string) string {
	// the value may be a label instead of a code
	for i, text := range variable.ValueTexts {
		if i < len(variable.Values) && strings.EqualFold(text, value) {
			return variable.Values[i]
		}
	}
	return closest(value, variable.Values)
}

const minSimilarity = 0.7

// closest returns the most similar candidate, or "" when nothing is
// similar enough to be worth suggesting.
func closest(value string, candidates []string) string {
	best := ""
	bestScore := 0.0
	for _, c := range candidates {
		score := matchr.JaroWinkler(strings.ToLower(value), strings.ToLower(c), false)
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	if bestScore < minSimilarity {
		return ""
	}
	return best
}
