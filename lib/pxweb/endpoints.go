package pxweb

import (
	"path"
	"slices"
	"strings"
)

// Endpoint is the path of a table below "ssd/".
type Endpoint string

const (
	PopulationRegion           Endpoint = "BE/BE0101/BE0101A/BefolkningNy"
	PopulationCitizenshipGroup Endpoint = "BE/BE0101/BE0101A/FolkmMedblandHVD"
	PopulationBirthCountry     Endpoint = "BE/BE0101/BE0101E/FodelselandArK"
	MigrationBirthCountry      Endpoint = "BE/BE0101/BE0101J/ImmiEmiFod"
	ForeignCitizensCountry     Endpoint = "BE/BE0101/BE0101F/UtlmedbR"
	PopulationChanges          Endpoint = "BE/BE0101/BE0101G/BefUtvKon1749"
	PopulationKey              Endpoint = "BE/BE0101/BE0101X/NTBE0101"
	PopulationRegionBirth      Endpoint = "BE/BE0101/BE0101E/FolkmRegFlandK"
	EnergyElSupply             Endpoint = "EN/EN0108/EN0108A/EltillfM"
	ParliamentSeats            Endpoint = "ME/ME0104/ME0104C/Riksdagsmandat"
)

var descriptions = map[Endpoint]string{
	PopulationRegion:           "population by region, marital status, age and sex",
	PopulationCitizenshipGroup: "population by region, citizenship group and sex",
	PopulationBirthCountry:     "population by country of birth, age and sex",
	MigrationBirthCountry:      "immigrations and emigrations by country of birth and sex",
	ForeignCitizensCountry:     "foreign citizens by citizenship and sex",
	PopulationChanges:          "population and population changes since 1749",
	PopulationKey:              "population key figures",
	PopulationRegionBirth:      "population by region, region of birth and sex",
	EnergyElSupply:             "electricity supply per month",
	ParliamentSeats:            "seats in the Riksdag per party",
}

// Endpoints lists the known tables.
func Endpoints() []Endpoint {
	out := make([]Endpoint, 0, len(descriptions))
	for e := range descriptions {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}

// Name is the table id, the last path segment.
func (e Endpoint) Name() string {
	return path.Base(string(e))
}

func (e Endpoint) Description() string {
	return descriptions[e]
}

// ParseEndpoint accepts a known table path or a bare table id like
// "ImmiEmiFod". Unknown values containing a "/" are taken as raw paths.
func ParseEndpoint(value string) (Endpoint, bool) {
	value = strings.Trim(strings.TrimSpace(value), "/")
	for e := range descriptions {
		if string(e) == value || strings.EqualFold(e.Name(), value) {
			return e, true
		}
	}
	if strings.Contains(value, "/") {
		return Endpoint(value), true
	}
	return "", false
}
