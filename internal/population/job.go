// Package population builds the population by nationality tables and
// the Swedish-born share chart.
package population

import (
	"statcharts/internal/publish"
	"statcharts/internal/telemetry"
	"statcharts/lib/pxweb"
)

const (
	citizenshipKey = "citizenship"
	foreignKey     = "country_of_citizenship"
	birthKey       = "country_of_birth"
	regionBirthKey = "region_of_birth"
	number         = "number"
)

const DefaultYear = "2023"

type Options struct {
	Client    *pxweb.Client
	Target    publish.Target
	Telemetry telemetry.API
	// Year of the nationality tables, DefaultYear when empty.
	Year string
}

type Job struct {
	client *pxweb.Client
	target publish.Target
	tel    telemetry.API
	year   string
}

func New(opts Options) *Job {
	if opts.Year == "" {
		opts.Year = DefaultYear
	}
	return &Job{
		client: opts.Client,
		target: opts.Target,
		tel:    telemetry.NewScopedAPI("population", opts.Telemetry),
		year:   opts.Year,
	}
}
