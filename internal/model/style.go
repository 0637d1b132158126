package model

// Style is a canonical dance style. Unrecognized raw styles are carried
// through as best-effort enum values rather than rejected, so the set is
// open-ended in practice; these constants cover the known vocabulary.
type Style string

const (
	StyleWaltz          Style = "WALTZ"
	StyleTango          Style = "TANGO"
	StyleFoxtrot        Style = "FOXTROT"
	StyleVienneseWaltz  Style = "VIENNESE_WALTZ"
	StyleQuickstep      Style = "QUICKSTEP"
	StyleChaCha         Style = "CHA_CHA"
	StyleSamba          Style = "SAMBA"
	StyleRumba          Style = "RUMBA"
	StylePasoDoble      Style = "PASO_DOBLE"
	StyleJive           Style = "JIVE"
	StyleBolero         Style = "BOLERO"
	StyleMambo          Style = "MAMBO"
	StyleWestCoastSwing Style = "WEST_COAST_SWING"
)

// Level is a canonical proficiency tier.
type Level string

const (
	LevelNewcomer     Level = "NEWCOMER"
	LevelBronze       Level = "BRONZE"
	LevelSilver       Level = "SILVER"
	LevelGold         Level = "GOLD"
	LevelNovice       Level = "NOVICE"
	LevelPreChamp     Level = "PRE_CHAMP"
	LevelChampionship Level = "CHAMPIONSHIP"
)

// Category groups styles for display and filtering.
type Category string

const (
	CategoryStandard Category = "STANDARD"
	CategorySmooth   Category = "SMOOTH"
	CategoryLatin    Category = "LATIN"
	CategoryRhythm   Category = "RHYTHM"
)

// Source identifies the originating registry of a scraped record.
type Source string

const (
	SourceNDCA Source = "NDCA"
	SourceO2CM Source = "O2CM"
)

// PartnerStatus mirrors the profile partner-search state in the main app.
type PartnerStatus string

const (
	PartnerStatusOpenToInquiries PartnerStatus = "OPEN_TO_INQUIRIES"
)
