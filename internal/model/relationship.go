package model

import (
	"errors"
	"time"
)

// RelationshipType describes how one stakeholder relates to another
type RelationshipType string

const (
	RelReportsTo    RelationshipType = "reports_to"
	RelManages      RelationshipType = "manages"
	RelCollaborates RelationshipType = "collaborates"
	RelInfluences   RelationshipType = "influences"
	RelDependsOn    RelationshipType = "depends_on"
	RelConflicts    RelationshipType = "conflicts"
	RelSupports     RelationshipType = "supports"
)

// Label is the human readable verb phrase
func (t RelationshipType) Label() string {
	switch t {
	case RelReportsTo:
		return "Reports To"
	case RelManages:
		return "Manages"
	case RelCollaborates:
		return "Collaborates With"
	case RelInfluences:
		return "Influences"
	case RelDependsOn:
		return "Depends On"
	case RelConflicts:
		return "Has Conflict With"
	case RelSupports:
		return "Supports"
	}
	return ""
}

// Valid reports whether t is a known relationship type
func (t RelationshipType) Valid() bool {
	return t.Label() != ""
}

// Strength grades a relationship
type Strength string

const (
	StrengthWeak     Strength = "weak"
	StrengthModerate Strength = "moderate"
	StrengthStrong   Strength = "strong"
)

// Relationship links two stakeholders of the same owner.
// (FromID, ToID, Type) is unique.
type Relationship struct {
	ID          string           `json:"id" bson:"_id"`
	OwnerID     string           `json:"ownerId" bson:"ownerId"`
	FromID      string           `json:"fromStakeholderId" bson:"fromStakeholderId"`
	ToID        string           `json:"toStakeholderId" bson:"toStakeholderId"`
	Type        RelationshipType `json:"relationshipType" bson:"relationshipType"`
	Description string           `json:"description" bson:"description"`
	Strength    Strength         `json:"strength" bson:"strength"`
	CreatedAt   time.Time        `json:"createdAt" bson:"createdAt"`
}

// ApplyDefaults sets the default strength
func (r *Relationship) ApplyDefaults() {
	if r.Strength == "" {
		r.Strength = StrengthModerate
	}
}

// Validate checks both ends and enum membership
func (r *Relationship) Validate() error {
	switch {
	case r.FromID == "" || r.ToID == "":
		return errors.New("both stakeholders are required")
	case r.FromID == r.ToID:
		return errors.New("a stakeholder cannot relate to itself")
	case !r.Type.Valid():
		return errors.New("unknown relationship type " + string(r.Type))
	}
	switch r.Strength {
	case StrengthWeak, StrengthModerate, StrengthStrong:
		return nil
	}
	return errors.New("unknown strength " + string(r.Strength))
}

// RelationshipView names both ends for display
type RelationshipView struct {
	*Relationship
	TypeLabel string `json:"relationshipLabel"`
	FromName  string `json:"fromStakeholderName"`
	ToName    string `json:"toStakeholderName"`
}
