package domain

import (
	"strings"
	"time"
)

// Archetype is one of the twelve marketing-personality categories.
type Archetype string

const (
	ArchetypeInnocent  Archetype = "The Innocent"
	ArchetypeSage      Archetype = "The Sage"
	ArchetypeExplorer  Archetype = "The Explorer"
	ArchetypeOutlaw    Archetype = "The Outlaw"
	ArchetypeMagician  Archetype = "The Magician"
	ArchetypeHero      Archetype = "The Hero"
	ArchetypeLover     Archetype = "The Lover"
	ArchetypeJester    Archetype = "The Jester"
	ArchetypeEveryman  Archetype = "The Everyman"
	ArchetypeCaregiver Archetype = "The Caregiver"
	ArchetypeRuler     Archetype = "The Ruler"
	ArchetypeCreator   Archetype = "The Creator"
)

// DefaultArchetype is used when synthesis yields no recognizable archetype.
const DefaultArchetype = ArchetypeSage

// Archetypes lists the known archetypes in canonical order.
var Archetypes = []Archetype{
	ArchetypeInnocent, ArchetypeSage, ArchetypeExplorer, ArchetypeOutlaw,
	ArchetypeMagician, ArchetypeHero, ArchetypeLover, ArchetypeJester,
	ArchetypeEveryman, ArchetypeCaregiver, ArchetypeRuler, ArchetypeCreator,
}

var archetypeAliases = map[string]Archetype{
	"regular guy": ArchetypeEveryman,
	"regular gal": ArchetypeEveryman,
	"orphan":      ArchetypeEveryman,
	"rebel":       ArchetypeOutlaw,
	"sovereign":   ArchetypeRuler,
	"artist":      ArchetypeCreator,
	"fool":        ArchetypeJester,
	"warrior":     ArchetypeHero,
}

// ParseArchetype maps loose model output ("sage", "THE HERO", "The Rebel")
// onto a known archetype.
func ParseArchetype(s string) (Archetype, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.TrimPrefix(key, "the ")
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false
	}
	for _, a := range Archetypes {
		if strings.ToLower(strings.TrimPrefix(string(a), "The ")) == key {
			return a, true
		}
	}
	if a, ok := archetypeAliases[key]; ok {
		return a, true
	}
	return "", false
}

// ToneOfVoice is the four-part tone guide produced by synthesis.
type ToneOfVoice struct {
	KeyTraits          string `json:"keyTraits"`
	CommunicationStyle string `json:"communicationStyle"`
	Examples           string `json:"examples"`
	Guidelines         string `json:"guidelines"`
}

// ToneProfile is the stored tone result for a brand. Saving overwrites.
type ToneProfile struct {
	BrandID    string
	Archetypes []Archetype
	Tone       ToneOfVoice
	Source     string
	UpdatedAt  time.Time
}

// Onboarding is a user's intake record. CoreMessage is overwritten in place
// by every refinement round; no history is kept.
type Onboarding struct {
	UserID         string
	BusinessName   string
	Industry       string
	Description    string
	ProductService string
	TargetAudience string
	Goals          string
	CoreMessage    string
	UpdatedAt      time.Time
}

// PromptOverride is admin-edited user prompt text for a named template.
type PromptOverride struct {
	Name      string
	Text      string
	UpdatedBy string
	UpdatedAt time.Time
}
