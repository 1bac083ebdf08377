// Package i18n holds the translated chart labels and the date and
// number formatting of the languages charts are published in.
package i18n

import (
	"fmt"
	"strings"
	"time"

	"statcharts/lib/timezone"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Language string

const (
	English Language = "en"
	Polish  Language = "pl"
	Swedish Language = "sv"
)

func Languages() []Language {
	return []Language{English, Polish, Swedish}
}

func Parse(value string) (Language, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, l := range Languages() {
		if string(l) == value {
			return l, nil
		}
	}
	return "", fmt.Errorf("unsupported language %q, expected one of en, pl, sv", value)
}

type Key string

const (
	Title        Key = "title"
	YLabel       Key = "y_label"
	Immigration  Key = "immigration"
	Emigration   Key = "emigration"
	NetMigration Key = "net_migration"
	Source       Key = "source"
	Updated      Key = "updated"
)

var translations = map[Language]map[Key]string{
	English: {
		Title:        "Immigration and Emigration in Sweden",
		YLabel:       "Number of People per Year",
		Immigration:  "Immigration",
		Emigration:   "Emigration",
		NetMigration: "Net Migration",
		Source:       "Source",
		Updated:      "Updated",
	},
	Polish: {
		Title:        "Imigracja i Emigracja w Szwecji",
		YLabel:       "Liczba Osób Rocznie",
		Immigration:  "Imigracja",
		Emigration:   "Emigracja",
		NetMigration: "Migracja Netto",
		Source:       "Źródło",
		Updated:      "Zaktualizowano",
	},
	Swedish: {
		Title:        "Invandrare och utvandrare, Sverige",
		YLabel:       "Antal personer per år",
		Immigration:  "Invandrare",
		Emigration:   "Utvandrare",
		NetMigration: "Nettomigration",
		Source:       "Källa",
		Updated:      "Uppdaterad",
	},
}

// T translates a key, falling back to English.
func (l Language) T(key Key) string {
	if s, ok := translations[l][key]; ok {
		return s
	}
	return translations[English][key]
}

func (l Language) tag() language.Tag {
	switch l {
	case Polish:
		return language.Polish
	case Swedish:
		return language.Swedish
	default:
		return language.BritishEnglish
	}
}

var months = map[Language][12]string{
	English: {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	Polish:  {"sty", "lut", "mar", "kwi", "maj", "cze", "lip", "sie", "wrz", "paź", "lis", "gru"},
	Swedish: {"jan", "feb", "mar", "apr", "maj", "jun", "jul", "aug", "sep", "okt", "nov", "dec"},
}

// FormatDate renders "d Mon YYYY" with the month abbreviated the way
// the language does it.
func FormatDate(t time.Time, lang Language) string {
	names, ok := months[lang]
	if !ok {
		names = months[English]
	}
	return fmt.Sprintf("%d %s %d", t.Day(), names[t.Month()-1], t.Year())
}

// FormatInt groups digits with the separator of the language.
func FormatInt(n int64, lang Language) string {
	return message.NewPrinter(lang.tag()).Sprintf("%d", n)
}

// FormatFloat is FormatInt with a fixed number of decimals.
func FormatFloat(f float64, decimals int, lang Language) string {
	return message.NewPrinter(lang.tag()).Sprintf("%.*f", decimals, f)
}

// SourceInfo is the provenance of a published table.
type SourceInfo struct {
	Source   string
	Label    string
	Infofile string
	Updated  string
}

// Footer renders "Source: {source} - {label} ({infofile}) - Updated: {date}".
// The date part is left out when the table carries no update time.
func Footer(info SourceInfo, lang Language) string {
	footer := fmt.Sprintf(
		"%s: %s - %s (%s)",
		lang.T(Source), info.Source, info.Label, info.Infofile,
	)
	if info.Updated == "" {
		return footer
	}
	updated := info.Updated
	parsed, err := timezone.ParseUpdated(info.Updated)
	if err == nil {
		updated = FormatDate(parsed, lang)
	}
	return fmt.Sprintf("%s - %s: %s", footer, lang.T(Updated), updated)
}
