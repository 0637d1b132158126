// Package model defines the dancer, style, and competition result records
// exchanged between the scrapers and the importer.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DancerProfile is a dancer row. Profiles created by the pipeline are
// provisional (unclaimed) until the represented person claims them.
type DancerProfile struct {
	ID              string        `json:"id"`
	Email           string        `json:"email"`
	FirstName       string        `json:"firstName"`
	LastName        string        `json:"lastName"`
	State           *string       `json:"state,omitempty"`
	StudioName      *string       `json:"studioName,omitempty"`
	NDCAID          *string       `json:"ndcaId,omitempty"`
	IsClaimed       bool          `json:"isClaimed"`
	IsTeacher       bool          `json:"isTeacher"`
	TeacherVerified bool          `json:"teacherVerified"`
	OpenToProAm     bool          `json:"openToProAm"`
	PartnerStatus   PartnerStatus `json:"partnerStatus"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// DanceStyleEntry records one style a dancer can dance. At most one entry
// exists per (dancer, style) pair; duplicate inserts are ignored.
type DanceStyleEntry struct {
	ID             string   `json:"id"`
	DancerID       string   `json:"dancerId"`
	Style          Style    `json:"style"`
	Category       Category `json:"category"`
	Level          Level    `json:"level"`
	IsCompeting    bool     `json:"isCompeting"`
	WantsToCompete bool     `json:"wantsToCompete"`
}

// ProfileDefaults holds the flag values applied to every pipeline-created
// profile. Lifted into one structure so policy changes are localized.
type ProfileDefaults struct {
	IsClaimed       bool
	IsTeacher       bool
	TeacherVerified bool
	OpenToProAm     bool
	PartnerStatus   PartnerStatus
}

// DefaultProfile returns the standard defaults for provisional profiles:
// unclaimed, non-teacher, open to inquiries.
func DefaultProfile() ProfileDefaults {
	return ProfileDefaults{
		IsClaimed:       false,
		IsTeacher:       false,
		TeacherVerified: false,
		OpenToProAm:     false,
		PartnerStatus:   PartnerStatusOpenToInquiries,
	}
}

// Apply stamps the defaults onto a profile.
func (d ProfileDefaults) Apply(p *DancerProfile) {
	p.IsClaimed = d.IsClaimed
	p.IsTeacher = d.IsTeacher
	p.TeacherVerified = d.TeacherVerified
	p.OpenToProAm = d.OpenToProAm
	p.PartnerStatus = d.PartnerStatus
}

// NewID returns a 25-character identifier: a v4 uuid with dashes stripped,
// truncated to match the cuid length used by the main application's schema.
func NewID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:25]
}

// PlaceholderEmail synthesizes a non-deliverable address for a provisional
// profile. It exists only to satisfy the store's email uniqueness constraint.
func PlaceholderEmail(first, last, id string) string {
	frag := id
	if len(frag) > 6 {
		frag = frag[:6]
	}
	return strings.ToLower(fmt.Sprintf("%s.%s.%s@noreply.filledcard.com", first, last, frag))
}
