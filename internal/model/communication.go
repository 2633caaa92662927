package model

import "strings"

// CommunicationType is the kind of message the assistant drafts
type CommunicationType string

const (
	CommEmail          CommunicationType = "email"
	CommLetter         CommunicationType = "letter"
	CommMeetingRequest CommunicationType = "meeting_request"
	CommFollowUp       CommunicationType = "follow_up"
)

// Valid reports whether t is a known communication type
func (t CommunicationType) Valid() bool {
	switch t {
	case CommEmail, CommLetter, CommMeetingRequest, CommFollowUp:
		return true
	}
	return false
}

// Label renders the type as prose, e.g. "meeting request"
func (t CommunicationType) Label() string {
	return strings.ReplaceAll(string(t), "_", " ")
}

// DraftRequest asks for a drafted message to a stakeholder
type DraftRequest struct {
	StakeholderID     string            `json:"stakeholderId"`
	CommunicationType CommunicationType `json:"communicationType"`
	Purpose           string            `json:"purpose"`
}

// NotesRequest carries meeting notes for summarization
type NotesRequest struct {
	StakeholderID string `json:"stakeholderId"`
	Notes         string `json:"notes"`
}

// TextRequest carries free text for sentiment or action item analysis
type TextRequest struct {
	Text string `json:"text"`
}
