package model

import (
	"errors"
	"strings"
	"time"
)

// EngagementType is the channel of an interaction
type EngagementType string

const (
	EngagementMeeting      EngagementType = "meeting"
	EngagementEmail        EngagementType = "email"
	EngagementPhone        EngagementType = "phone"
	EngagementPresentation EngagementType = "presentation"
	EngagementWorkshop     EngagementType = "workshop"
	EngagementSurvey       EngagementType = "survey"
	EngagementInterview    EngagementType = "interview"
	EngagementOther        EngagementType = "other"
)

// EngagementTypes lists every type in display order
var EngagementTypes = []EngagementType{
	EngagementMeeting, EngagementEmail, EngagementPhone, EngagementPresentation,
	EngagementWorkshop, EngagementSurvey, EngagementInterview, EngagementOther,
}

// Valid reports whether t is a known engagement type
func (t EngagementType) Valid() bool {
	for _, known := range EngagementTypes {
		if t == known {
			return true
		}
	}
	return false
}

// EngagementStatus tracks the lifecycle of an engagement
type EngagementStatus string

const (
	StatusPlanned   EngagementStatus = "planned"
	StatusCompleted EngagementStatus = "completed"
	StatusCancelled EngagementStatus = "cancelled"
	StatusPostponed EngagementStatus = "postponed"
)

// Valid reports whether s is a known status
func (s EngagementStatus) Valid() bool {
	switch s {
	case StatusPlanned, StatusCompleted, StatusCancelled, StatusPostponed:
		return true
	}
	return false
}

// Sentiment is the normalized tone label
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Valid reports whether s is one of the three literals
func (s Sentiment) Valid() bool {
	return s == SentimentPositive || s == SentimentNeutral || s == SentimentNegative
}

// Engagement is a logged interaction with a stakeholder
type Engagement struct {
	ID                  string           `json:"id" bson:"_id"`
	OwnerID             string           `json:"ownerId" bson:"ownerId"`
	StakeholderID       string           `json:"stakeholderId" bson:"stakeholderId"`
	Title               string           `json:"title" bson:"title"`
	Type                EngagementType   `json:"type" bson:"type"`
	Status              EngagementStatus `json:"status" bson:"status"`
	ScheduledDate       time.Time        `json:"scheduledDate" bson:"scheduledDate"`
	DurationMinutes     int              `json:"durationMinutes" bson:"durationMinutes"`
	Description         string           `json:"description" bson:"description"`
	Objectives          string           `json:"objectives" bson:"objectives"`
	Outcomes            string           `json:"outcomes" bson:"outcomes"`
	ActionItems         string           `json:"actionItems" bson:"actionItems"`
	Sentiment           Sentiment        `json:"sentiment,omitempty" bson:"sentiment,omitempty"`
	EffectivenessRating *int             `json:"effectivenessRating,omitempty" bson:"effectivenessRating,omitempty"`

	// AI features
	AISummary           string `json:"aiSummary" bson:"aiSummary"`
	AIActionItems       string `json:"aiActionItems" bson:"aiActionItems"`
	AISentimentAnalysis string `json:"aiSentimentAnalysis" bson:"aiSentimentAnalysis"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ApplyDefaults fills the fields a form may leave blank
func (e *Engagement) ApplyDefaults() {
	e.Title = strings.TrimSpace(e.Title)
	if e.Type == "" {
		e.Type = EngagementMeeting
	}
	if e.Status == "" {
		e.Status = StatusPlanned
	}
	if e.DurationMinutes == 0 {
		e.DurationMinutes = 60
	}
}

// Validate checks required fields, enums and ranges
func (e *Engagement) Validate() error {
	switch {
	case e.StakeholderID == "":
		return errors.New("stakeholder is required")
	case e.Title == "":
		return errors.New("title is required")
	case e.ScheduledDate.IsZero():
		return errors.New("scheduled date is required")
	case !e.Type.Valid():
		return errors.New("unknown engagement type " + string(e.Type))
	case !e.Status.Valid():
		return errors.New("unknown status " + string(e.Status))
	case e.DurationMinutes < 1:
		return errors.New("duration must be at least one minute")
	case e.Sentiment != "" && !e.Sentiment.Valid():
		return errors.New("unknown sentiment " + string(e.Sentiment))
	case e.EffectivenessRating != nil && (*e.EffectivenessRating < 1 || *e.EffectivenessRating > 5):
		return errors.New("effectiveness rating must be between 1 and 5")
	}
	return nil
}

// IsUpcoming is a planned engagement scheduled at or after now
func (e *Engagement) IsUpcoming(now time.Time) bool {
	return e.Status == StatusPlanned && !e.ScheduledDate.Before(now)
}

// IsOverdue is a planned engagement whose date has passed
func (e *Engagement) IsOverdue(now time.Time) bool {
	return e.Status == StatusPlanned && e.ScheduledDate.Before(now)
}

// EngagementFilter narrows an engagement listing
type EngagementFilter struct {
	Status        EngagementStatus
	StakeholderID string
	Type          EngagementType
	Upcoming      bool
	Overdue       bool
}

// EngagementSummary is the normalized structured meeting summary
type EngagementSummary struct {
	Summary     string    `json:"summary"`
	ActionItems string    `json:"action_items"`
	Sentiment   Sentiment `json:"sentiment"`
	Risks       string    `json:"risks"`
	FollowUp    string    `json:"follow_up"`
}
