// Package riksdag draws the seats of the Swedish parliament per election
// as stacked stripes.
package riksdag

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"statcharts/lib/pxweb"
)

type Party struct {
	Code  string
	Name  string
	Color string
}

// Parties are listed from left to right, the order of the stripes.
var Parties = []Party{
	{Code: "V", Name: "Vänsterpartiet", Color: "rgb(145,20,20)"},
	{Code: "S", Name: "Socialdemokraterna", Color: "rgb(224,46,61)"},
	{Code: "MP", Name: "Miljöpartiet", Color: "rgb(130,200,130)"},
	{Code: "C", Name: "Centerpartiet", Color: "rgb(49,165,50)"},
	{Code: "FP", Name: "Liberalerna", Color: "rgb(30,105,170)"},
	{Code: "NYD", Name: "Ny demokrati", Color: "rgb(100,80,0)"},
	{Code: "KD", Name: "Kristdemokraterna", Color: "rgb(51,29,121)"},
	{Code: "M", Name: "Moderaterna", Color: "rgb(125,190,225)"},
	{Code: "SD", Name: "Sverigedemokraterna", Color: "rgb(255,195,70)"},
}

func partyIndex(code string) int {
	for i, p := range Parties {
		if p.Code == code {
			return i
		}
	}
	return len(Parties)
}

type Seats struct {
	Party string
	Seats int
}

type Election struct {
	Year  string
	Seats []Seats
}

func (e Election) Total() int {
	total := 0
	for _, s := range e.Seats {
		total += s.Seats
	}
	return total
}

// Query selects the whole country and every party of Parties.
func Query() pxweb.Query {
	codes := make([]string, len(Parties))
	for i, p := range Parties {
		codes[i] = p.Code
	}
	return pxweb.Query{
		Query: []pxweb.Selection{
			{Code: "Region", Selection: pxweb.Filter{Filter: "vs:RegionValkretsTot99", Values: []string{"VR00"}}},
			{Code: "Parti", Selection: pxweb.Filter{Filter: "item", Values: codes}},
		},
		Response: pxweb.ResponseFormat{Format: "json"},
	}
}

// Fetch queries the seats table in Swedish, the party codes are the
// same in every language.
func Fetch(ctx context.Context, client *pxweb.Client) ([]Election, error) {
	res, err := client.WithLanguage(pxweb.Swedish).PostQuery(ctx, pxweb.ParliamentSeats, Query())
	if err != nil {
		return nil, err
	}
	return Elections(res)
}

// Elections groups the rows of a seats response by year. Rows are keyed
// by region, party and year. Parties without seats are left out.
func Elections(res pxweb.Response) ([]Election, error) {
	byYear := map[string][]Seats{}
	for i, row := range res.Data {
		if len(row.Key) < 3 {
			return nil, fmt.Errorf("row %d: expected region, party and year keys, got %v", i, row.Key)
		}
		party, year := row.Key[1], row.Key[2]
		if _, ok := byYear[year]; !ok {
			byYear[year] = nil
		}
		if len(row.Values) == 0 {
			continue
		}
		seats, err := strconv.Atoi(strings.TrimSpace(row.Values[0]))
		if err != nil || seats <= 0 {
			continue
		}
		byYear[year] = append(byYear[year], Seats{Party: party, Seats: seats})
	}

	elections := make([]Election, 0, len(byYear))
	for year, seats := range byYear {
		sort.SliceStable(seats, func(i, j int) bool {
			return partyIndex(seats[i].Party) < partyIndex(seats[j].Party)
		})
		elections = append(elections, Election{Year: year, Seats: seats})
	}
	sort.Slice(elections, func(i, j int) bool {
		a, errA := strconv.Atoi(elections[i].Year)
		b, errB := strconv.Atoi(elections[j].Year)
		if errA == nil && errB == nil {
			return a < b
		}
		return elections[i].Year < elections[j].Year
	})
	return elections, nil
}
