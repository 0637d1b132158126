// Package normalize maps free-text style, level, and name fields onto the
// canonical vocabulary. All functions are total: unrecognized input degrades
// to a best-effort or default value rather than failing, because upstream
// text quality is uncontrolled and a bad field must never stall a batch.
package normalize

import (
	"strings"

	"github.com/filledcard/ingest-cli/internal/model"
)

var styleSynonyms = map[string]model.Style{
	"waltz":            model.StyleWaltz,
	"tango":            model.StyleTango,
	"foxtrot":          model.StyleFoxtrot,
	"viennese waltz":   model.StyleVienneseWaltz,
	"viennese":         model.StyleVienneseWaltz,
	"quickstep":        model.StyleQuickstep,
	"cha cha":          model.StyleChaCha,
	"cha-cha":          model.StyleChaCha,
	"samba":            model.StyleSamba,
	"rumba":            model.StyleRumba,
	"paso doble":       model.StylePasoDoble,
	"paso":             model.StylePasoDoble,
	"jive":             model.StyleJive,
	"bolero":           model.StyleBolero,
	"mambo":            model.StyleMambo,
	"west coast swing": model.StyleWestCoastSwing,
	"wcs":              model.StyleWestCoastSwing,
}

var levelSynonyms = map[string]model.Level{
	"newcomer":         model.LevelNewcomer,
	"bronze":           model.LevelBronze,
	"silver":           model.LevelSilver,
	"gold":             model.LevelGold,
	"novice":           model.LevelNovice,
	"pre-championship": model.LevelPreChamp,
	"pre championship": model.LevelPreChamp,
	"pre-champ":        model.LevelPreChamp,
	"pre_champ":        model.LevelPreChamp,
	"championship":     model.LevelChampionship,
	"champ":            model.LevelChampionship,
}

var styleCategories = map[model.Style]model.Category{
	model.StyleWaltz:          model.CategoryStandard,
	model.StyleTango:          model.CategoryStandard,
	model.StyleFoxtrot:        model.CategorySmooth,
	model.StyleVienneseWaltz:  model.CategoryStandard,
	model.StyleQuickstep:      model.CategoryStandard,
	model.StyleChaCha:         model.CategoryRhythm,
	model.StyleSamba:          model.CategoryLatin,
	model.StyleRumba:          model.CategoryRhythm,
	model.StylePasoDoble:      model.CategoryLatin,
	model.StyleJive:           model.CategoryLatin,
	model.StyleBolero:         model.CategoryRhythm,
	model.StyleMambo:          model.CategoryRhythm,
	model.StyleWestCoastSwing: model.CategoryRhythm,
}

// Style maps a raw style token onto the canonical enum. Unknown styles pass
// through upper-cased with spaces replaced by underscores, so an unlisted
// style still round-trips instead of being dropped.
func Style(raw string) model.Style {
	key := strings.ToLower(strings.TrimSpace(raw))
	if s, ok := styleSynonyms[key]; ok {
		return s
	}
	return model.Style(strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(raw)), " ", "_"))
}

// Level maps a raw level token onto the canonical enum. Unknown levels
// default to BRONZE, the most common entry tier.
func Level(raw string) model.Level {
	key := strings.ToLower(strings.TrimSpace(raw))
	if l, ok := levelSynonyms[key]; ok {
		return l
	}
	return model.LevelBronze
}

// CategoryOf returns the fixed category for a style, defaulting to STANDARD
// for styles outside the table.
func CategoryOf(s model.Style) model.Category {
	if c, ok := styleCategories[s]; ok {
		return c
	}
	return model.CategoryStandard
}
