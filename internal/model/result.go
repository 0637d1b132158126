package model

import "time"

// CompetitionResultRecord is one imported competition placement. Records are
// created during import and never mutated or deleted afterward.
type CompetitionResultRecord struct {
	ID               string    `json:"id"`
	DancerID         string    `json:"dancerId"`
	CompetitionName  string    `json:"competitionName"`
	CompetitionDate  time.Time `json:"competitionDate"`
	Location         *string   `json:"location,omitempty"`
	PartnerName      *string   `json:"partnerName,omitempty"`
	Style            Style     `json:"style"`
	Level            Level     `json:"level"`
	Placement        *int      `json:"placement,omitempty"`
	TotalCompetitors *int      `json:"totalCompetitors,omitempty"`
	Source           Source    `json:"source"`
	ExternalID       *string   `json:"externalId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}
