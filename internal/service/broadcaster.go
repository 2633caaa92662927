package service

// Activity event types pushed to an owner's websocket feed
const (
	EventStakeholderCreated  = "stakeholder_created"
	EventStakeholderUpdated  = "stakeholder_updated"
	EventStakeholderDeleted  = "stakeholder_deleted"
	EventEngagementCreated   = "engagement_created"
	EventEngagementUpdated   = "engagement_updated"
	EventEngagementSummary   = "engagement_summarized"
	EventRelationshipCreated = "relationship_created"
	EventRelationshipDeleted = "relationship_deleted"
	EventInsightsGenerated   = "insights_generated"
)

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToOwner(ownerID string, msgType string, payload interface{})
}

type activity struct {
	broadcaster Broadcaster
}

// SetBroadcaster sets the websocket broadcaster
func (a *activity) SetBroadcaster(b Broadcaster) {
	a.broadcaster = b
}

func (a *activity) publish(ownerID, msgType string, payload interface{}) {
	if a.broadcaster != nil {
		a.broadcaster.BroadcastToOwner(ownerID, msgType, payload)
	}
}
