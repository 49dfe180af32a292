package domain

import (
	"strings"
	"time"
)

// Brand is the business profile every generation call uses as context.
// Owned by exactly one user.
type Brand struct {
	ID           string
	OwnerID      string
	Name         string
	Industry     string
	Description  string
	Website      string
	TargetMarket string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (b *Brand) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return Required("name")
	}
	if len(b.Name) > 200 {
		return Invalid("name", "must be at most 200 characters")
	}
	return nil
}

// Project groups briefs. BrandID is optional.
type Project struct {
	ID        string
	OwnerID   string
	BrandID   string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return Required("name")
	}
	return nil
}

// Brief is the structured marketing intake that seeds audience generation.
type Brief struct {
	ID              string
	ProjectID       string
	Purpose         string
	MainMessage     string
	SpecialFeatures string
	Beneficiaries   string
	Benefits        string
	CallToAction    string
	Importance      string
	AdditionalInfo  string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (b *Brief) Validate() error {
	if strings.TrimSpace(b.Purpose) == "" {
		return Required("purpose")
	}
	if strings.TrimSpace(b.MainMessage) == "" {
		return Required("mainMessage")
	}
	return nil
}

// AudienceSegment is one generated audience. Text fields are stored verbatim
// as returned by the model.
type AudienceSegment struct {
	ID             string
	BriefID        string
	Position       int
	Title          string
	Description    string
	Insights       string
	MessagingAngle string
	Tone           string
	SupportPoints  string
	PersonaProfile string
	CreatedAt      time.Time
}
