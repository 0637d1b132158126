package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/filledcard/ingest-cli/internal/model"
)

func TestStyle_Synonyms(t *testing.T) {
	tests := []struct {
		raw  string
		want model.Style
	}{
		{"waltz", model.StyleWaltz},
		{"Waltz", model.StyleWaltz},
		{"  cha cha  ", model.StyleChaCha},
		{"cha-cha", model.StyleChaCha},
		{"CHA-CHA", model.StyleChaCha},
		{"viennese", model.StyleVienneseWaltz},
		{"Viennese Waltz", model.StyleVienneseWaltz},
		{"wcs", model.StyleWestCoastSwing},
		{"West Coast Swing", model.StyleWestCoastSwing},
		{"paso", model.StylePasoDoble},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Style(tt.raw), "raw=%q", tt.raw)
	}
}

func TestStyle_UnknownPassesThrough(t *testing.T) {
	assert.Equal(t, model.Style("ARGENTINE_TANGO"), Style("Argentine Tango"))
	assert.Equal(t, model.Style(""), Style(""))
	assert.Equal(t, model.Style("HUSTLE"), Style("hustle"))
}

func TestStyle_Idempotent(t *testing.T) {
	for _, raw := range []string{"waltz", "cha cha", "Argentine Tango", "", "wcs"} {
		once := Style(raw)
		assert.Equal(t, once, Style(string(once)), "raw=%q", raw)
	}
}

func TestLevel_Synonyms(t *testing.T) {
	tests := []struct {
		raw  string
		want model.Level
	}{
		{"newcomer", model.LevelNewcomer},
		{"Bronze", model.LevelBronze},
		{"SILVER", model.LevelSilver},
		{"gold", model.LevelGold},
		{"pre-champ", model.LevelPreChamp},
		{"Pre Championship", model.LevelPreChamp},
		{"PRE_CHAMP", model.LevelPreChamp},
		{"champ", model.LevelChampionship},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Level(tt.raw), "raw=%q", tt.raw)
	}
}

func TestLevel_UnknownDefaultsToBronze(t *testing.T) {
	assert.Equal(t, model.LevelBronze, Level(""))
	assert.Equal(t, model.LevelBronze, Level("advanced"))
	assert.Equal(t, model.LevelBronze, Level("???"))
}

func TestLevel_Idempotent(t *testing.T) {
	// Every synonym and every canonical enum value must round-trip, in
	// particular pre-champ, whose canonical spelling differs from all of
	// its synonyms.
	for raw := range levelSynonyms {
		once := Level(raw)
		assert.Equal(t, once, Level(string(once)), "raw=%q", raw)
	}
	for _, raw := range []string{"gold", "pre-champ", "unknown", ""} {
		once := Level(raw)
		assert.Equal(t, once, Level(string(once)), "raw=%q", raw)
	}
}

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, model.CategoryStandard, CategoryOf(model.StyleWaltz))
	assert.Equal(t, model.CategorySmooth, CategoryOf(model.StyleFoxtrot))
	assert.Equal(t, model.CategoryLatin, CategoryOf(model.StyleSamba))
	assert.Equal(t, model.CategoryRhythm, CategoryOf(model.StyleWestCoastSwing))

	// Pass-through styles outside the table default to STANDARD.
	assert.Equal(t, model.CategoryStandard, CategoryOf(model.Style("HUSTLE")))
}

func TestDancer_SplitsCombinedName(t *testing.T) {
	d := Dancer(model.RawDancer{Name: "anna maria smith", State: "new york"})
	assert.Equal(t, "Anna", d.FirstName)
	assert.Equal(t, "Maria Smith", d.LastName)
	assert.Empty(t, d.Name)
	assert.Equal(t, "NE", d.State)
	assert.Equal(t, model.SourceNDCA, d.Source)
}

func TestDancer_TitleCasesExistingFields(t *testing.T) {
	d := Dancer(model.RawDancer{FirstName: "  ann ", LastName: "LEE", State: "ny"})
	assert.Equal(t, "Ann", d.FirstName)
	assert.Equal(t, "Lee", d.LastName)
	assert.Equal(t, "NY", d.State)
}

func TestSplitName(t *testing.T) {
	first, last := SplitName("Ann Lee")
	assert.Equal(t, "Ann", first)
	assert.Equal(t, "Lee", last)

	first, last = SplitName("Cher")
	assert.Equal(t, "Cher", first)
	assert.Empty(t, last)

	first, last = SplitName("  ")
	assert.Empty(t, first)
	assert.Empty(t, last)
}
