package population

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"strconv"

	"statcharts/lib/dataset"
	"statcharts/lib/pxweb"
	"statcharts/lib/textutil"
)

// swedishCitizenship is the citizenship group counted as the Sweden row
// of the citizenship table.
const swedishCitizenship = "Swedish citizenship"

type Share struct {
	Label      string
	Number     float64
	Percentage float64
}

type Merged struct {
	Country     string
	Citizenship Share
	Birth       Share
}

// Nationality is the population of one year by citizenship and by
// country of birth.
type Nationality struct {
	Year string
	// Total is the population over all citizenship groups.
	Total        float64
	Groups       []Share
	Citizenship  []Share
	BirthCountry []Share
	Merged       []Merged
	Sources      []pxweb.SourceInfo
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func percent(n, total float64) float64 {
	if total == 0 {
		return 0
	}
	return round2(n / total * 100)
}

func descending(shares []Share) []Share {
	out := slices.Clone(shares)
	slices.SortStableFunc(out, func(a, b Share) int {
		return cmp.Compare(b.Number, a.Number)
	})
	return out
}

func totalsToShares(totals []dataset.Total, total float64) []Share {
	shares := make([]Share, len(totals))
	for i, t := range totals {
		shares[i] = Share{Label: t.Label, Number: t.Value, Percentage: percent(t.Value, total)}
	}
	return shares
}

func sum(shares []Share) float64 {
	var total float64
	for _, s := range shares {
		total += s.Number
	}
	return total
}

func requireColumns(frame dataset.Frame, key string) error {
	if !frame.HasDimension(key) {
		return fmt.Errorf("table has no %s dimension", key)
	}
	if !frame.HasMeasure(number) {
		return fmt.Errorf("table has no %s measure", number)
	}
	return nil
}

// CitizenshipGroups returns the population per citizenship group in
// percent of all groups, together with that total.
func CitizenshipGroups(frame dataset.Frame) ([]Share, float64, error) {
	err := requireColumns(frame, citizenshipKey)
	if err != nil {
		return nil, 0, err
	}
	groups := frame.Exclude(citizenshipKey, "total").SumBy([]string{citizenshipKey}, number)

	shares := make([]Share, groups.Len())
	for i, r := range groups.Records {
		shares[i] = Share{Label: groups.Label(r, citizenshipKey), Number: r.Value(number)}
	}
	// SumBy sorts groups by label, the table keeps response order
	order := frame.Labels(citizenshipKey)
	slices.SortStableFunc(shares, func(a, b Share) int {
		return cmp.Compare(slices.Index(order, a.Label), slices.Index(order, b.Label))
	})

	total := sum(shares)
	for i := range shares {
		shares[i].Percentage = percent(shares[i].Number, total)
	}
	return shares, total, nil
}

// ForeignCitizens returns the population per country of citizenship with
// Swedish citizens added as Sweden, largest first, in percent of total.
func ForeignCitizens(frame dataset.Frame, groups []Share, total float64) ([]Share, error) {
	err := requireColumns(frame, foreignKey)
	if err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(groups, func(s Share) bool { return s.Label == swedishCitizenship })
	if idx < 0 {
		return nil, fmt.Errorf("citizenship groups have no %q row", swedishCitizenship)
	}

	totals := frame.Exclude(foreignKey, "total").Totals(foreignKey, number)
	totals = append(totals, dataset.Total{Label: "Sweden", Value: groups[idx].Number})
	return descending(totalsToShares(totals, total)), nil
}

// BirthCountries returns the population per country of birth, largest
// first, in percent of everyone.
func BirthCountries(frame dataset.Frame) ([]Share, error) {
	err := requireColumns(frame, birthKey)
	if err != nil {
		return nil, err
	}
	totals := frame.Totals(birthKey, number)
	var total float64
	for _, t := range totals {
		total += t.Value
	}
	return descending(totalsToShares(totals, total)), nil
}

// Merge joins citizenship and birth country rows naming the same
// country, in citizenship order.
func Merge(citizenship, birth []Share) []Merged {
	names := make([]string, len(birth))
	for i, b := range birth {
		names[i] = b.Label
	}

	var merged []Merged
	for _, c := range citizenship {
		name, ok := textutil.MatchName(c.Label, names)
		if !ok {
			continue
		}
		merged = append(merged, Merged{
			Country:     c.Label,
			Citizenship: c,
			Birth:       birth[slices.Index(names, name)],
		})
	}
	return merged
}

// AtLeast keeps the rows with at least n people.
func AtLeast(shares []Share, n float64) []Share {
	var out []Share
	for _, s := range shares {
		if s.Number >= n {
			out = append(out, s)
		}
	}
	return out
}

func formatPercentage(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// Nationality fetches the three tables of a year and joins them.
func (j *Job) Nationality(ctx context.Context) (Nationality, error) {
	groupsFrame, sources, err := j.client.GetTable(ctx, pxweb.PopulationCitizenshipGroup, map[string][]string{
		"HDI":   {"TOT"},
		"Kon":   {"1+2"},
		"Alder": {"TOT1"},
		"Tid":   {j.year},
	})
	if err != nil {
		return Nationality{}, err
	}
	groups, total, err := CitizenshipGroups(groupsFrame)
	if err != nil {
		return Nationality{}, fmt.Errorf("citizenship groups: %w", err)
	}

	foreignFrame, _, err := j.client.GetTable(ctx, pxweb.ForeignCitizensCountry, map[string][]string{
		"Tid":   {j.year},
		"Alder": {"tot"},
	})
	if err != nil {
		return Nationality{}, err
	}
	citizenship, err := ForeignCitizens(foreignFrame, groups, total)
	if err != nil {
		return Nationality{}, fmt.Errorf("foreign citizens: %w", err)
	}

	birthFrame, _, err := j.client.GetTable(ctx, pxweb.PopulationBirthCountry, map[string][]string{
		"Tid": {j.year},
	})
	if err != nil {
		return Nationality{}, err
	}
	birth, err := BirthCountries(birthFrame)
	if err != nil {
		return Nationality{}, fmt.Errorf("birth countries: %w", err)
	}

	merged := Merge(citizenship, birth)
	j.tel.ReportCount("merged-countries", int64(len(merged)))

	return Nationality{
		Year:         j.year,
		Total:        total,
		Groups:       groups,
		Citizenship:  citizenship,
		BirthCountry: birth,
		Merged:       merged,
		Sources:      sources,
	}, nil
}
