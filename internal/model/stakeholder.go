package model

import (
	"errors"
	"strings"
	"time"

	"stakehub/internal/priority"
)

// Category classifies where a stakeholder sits relative to the organization
type Category string

const (
	CategoryInternal  Category = "internal"
	CategoryExternal  Category = "external"
	CategoryCustomer  Category = "customer"
	CategorySupplier  Category = "supplier"
	CategoryInvestor  Category = "investor"
	CategoryRegulator Category = "regulator"
	CategoryCommunity Category = "community"
	CategoryMedia     Category = "media"
)

// Categories lists every category in display order
var Categories = []Category{
	CategoryInternal, CategoryExternal, CategoryCustomer, CategorySupplier,
	CategoryInvestor, CategoryRegulator, CategoryCommunity, CategoryMedia,
}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Stakeholder is a person or entity tracked by an owner
type Stakeholder struct {
	ID           string         `json:"id" bson:"_id"`
	OwnerID      string         `json:"ownerId" bson:"ownerId"`
	Name         string         `json:"name" bson:"name"`
	Title        string         `json:"title" bson:"title"`
	Organization string         `json:"organization" bson:"organization"`
	Department   string         `json:"department" bson:"department"`
	Email        string         `json:"email" bson:"email"`
	Phone        string         `json:"phone" bson:"phone"`
	Influence    priority.Level `json:"influence" bson:"influence"`
	Interest     priority.Level `json:"interest" bson:"interest"`
	Category     Category       `json:"category" bson:"category"`
	Description  string         `json:"description" bson:"description"`
	Notes        string         `json:"notes" bson:"notes"`
	AIInsights   string         `json:"aiInsights" bson:"aiInsights"`
	CreatedAt    time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// ApplyDefaults fills the enum fields a form may leave blank
func (s *Stakeholder) ApplyDefaults() {
	s.Name = strings.TrimSpace(s.Name)
	if s.Influence == "" {
		s.Influence = priority.Medium
	}
	if s.Interest == "" {
		s.Interest = priority.Medium
	}
	if s.Category == "" {
		s.Category = CategoryInternal
	}
}

// Validate checks required fields and enum membership
func (s *Stakeholder) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if len(s.Name) > 200 {
		return errors.New("name must be at most 200 characters")
	}
	if !s.Influence.Valid() {
		return errors.New("unknown influence level " + string(s.Influence))
	}
	if !s.Interest.Valid() {
		return errors.New("unknown interest level " + string(s.Interest))
	}
	if !s.Category.Valid() {
		return errors.New("unknown category " + string(s.Category))
	}
	if s.Email != "" && !strings.Contains(s.Email, "@") {
		return errors.New("email is not valid")
	}
	return nil
}

// PriorityScore is influence × interest in [1, 16]
func (s *Stakeholder) PriorityScore() int {
	return priority.Score(s.Influence, s.Interest)
}

// IsHighPriority uses the shared threshold
func (s *Stakeholder) IsHighPriority() bool {
	return priority.IsHighPriority(s.Influence, s.Interest)
}

// StakeholderView adds the derived scores for API responses
type StakeholderView struct {
	*Stakeholder
	InfluenceScore int  `json:"influenceScore"`
	InterestScore  int  `json:"interestScore"`
	PriorityScore  int  `json:"priorityScore"`
	HighPriority   bool `json:"highPriority"`
}

// NewStakeholderView derives the scores on read
func NewStakeholderView(s *Stakeholder) StakeholderView {
	return StakeholderView{
		Stakeholder:    s,
		InfluenceScore: s.Influence.Score(),
		InterestScore:  s.Interest.Score(),
		PriorityScore:  s.PriorityScore(),
		HighPriority:   s.IsHighPriority(),
	}
}

// StakeholderOption is the compact shape used by dropdowns
type StakeholderOption struct {
	ID           string `json:"id" bson:"_id"`
	Name         string `json:"name" bson:"name"`
	Title        string `json:"title" bson:"title"`
	Organization string `json:"organization" bson:"organization"`
}

// StakeholderFilter narrows a stakeholder listing
type StakeholderFilter struct {
	Search    string
	Influence priority.Level
	Category  Category
	// HighPriorityOnly keeps stakeholders at or above priority.HighThreshold
	HighPriorityOnly bool
}
