package model

import "encoding/json"

// RawDancer is the wire shape of one membership-registry row as written by
// the scrape stage and read back by the importer.
type RawDancer struct {
	Name      string     `json:"name,omitempty"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	NDCAID    string     `json:"ndcaId,omitempty"`
	Studio    string     `json:"studio,omitempty"`
	State     string     `json:"state,omitempty"`
	Styles    []RawStyle `json:"styles"`
	Source    Source     `json:"source,omitempty"`
}

// RawStyle is a style declaration on a scraped dancer row. Upstream emits
// either a bare string ("Waltz") or an object ({"style":"Waltz",
// "level":"Gold"}), so unmarshaling accepts both.
type RawStyle struct {
	Style string `json:"style"`
	Level string `json:"level,omitempty"`
}

func (s *RawStyle) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		s.Style = plain
		s.Level = ""
		return nil
	}

	type alias RawStyle
	var obj alias
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*s = RawStyle(obj)
	return nil
}

// RawResult is the wire shape of one competition-result row.
type RawResult struct {
	CompetitionName  string `json:"competitionName"`
	CompetitionDate  string `json:"competitionDate,omitempty"`
	Location         string `json:"location,omitempty"`
	Style            string `json:"style"`
	Level            string `json:"level"`
	Placement        *int   `json:"placement"`
	TotalCompetitors *int   `json:"totalCompetitors"`
	Dancer1Name      string `json:"dancer1Name"`
	Dancer2Name      string `json:"dancer2Name,omitempty"`
	Source           Source `json:"source,omitempty"`
	ExternalID       string `json:"externalId,omitempty"`
}
