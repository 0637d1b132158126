package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/filledcard/ingest-cli/internal/model"
)

var titleCaser = cases.Title(language.English)

// Dancer cleans a scraped dancer row in place: a combined name is split on
// the first space, first/last names are title-cased, and the state is
// upper-cased and clipped to its 2-letter code.
func Dancer(d model.RawDancer) model.RawDancer {
	if d.Name != "" {
		first, last := SplitName(d.Name)
		d.FirstName = first
		d.LastName = last
		d.Name = ""
	}

	d.FirstName = titleCaser.String(strings.TrimSpace(d.FirstName))
	d.LastName = titleCaser.String(strings.TrimSpace(d.LastName))

	if d.State != "" {
		state := strings.ToUpper(strings.TrimSpace(d.State))
		if len(state) > 2 {
			state = state[:2]
		}
		d.State = state
	}

	if d.Source == "" {
		d.Source = model.SourceNDCA
	}
	return d
}

// SplitName splits a full name into (first, rest): the first token is the
// first name, everything after the first space is the last name.
func SplitName(full string) (string, string) {
	full = strings.TrimSpace(full)
	if full == "" {
		return "", ""
	}
	parts := strings.SplitN(full, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
