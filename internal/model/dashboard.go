package model

import "time"

// CountBucket is one bar of a distribution chart
type CountBucket struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// GridPoint positions a stakeholder on the influence/interest grid
type GridPoint struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Title          string `json:"title"`
	Organization   string `json:"organization"`
	Influence      string `json:"influence"`
	Interest       string `json:"interest"`
	InfluenceScore int    `json:"influenceScore"`
	InterestScore  int    `json:"interestScore"`
	PriorityScore  int    `json:"priorityScore"`
}

// Dashboard aggregates an owner's records
type Dashboard struct {
	TotalStakeholders   int            `json:"totalStakeholders"`
	TotalEngagements    int            `json:"totalEngagements"`
	HighPriorityCount   int            `json:"highPriorityCount"`
	UpcomingCount       int            `json:"upcomingEngagementsCount"`
	OverdueCount        int            `json:"overdueEngagementsCount"`
	RecentStakeholders  []*Stakeholder `json:"recentStakeholders"`
	UpcomingEngagements []*Engagement  `json:"upcomingEngagements"`
	InfluenceData       []CountBucket  `json:"influenceData"`
	InterestData        []CountBucket  `json:"interestData"`
	CategoryData        []CountBucket  `json:"categoryData"`
	EngagementTypes     []CountBucket  `json:"engagementTypes"`
	Grid                []GridPoint    `json:"stakeholders"`
	GeneratedAt         time.Time      `json:"generatedAt"`
}

// PriorityEntry is one row of the priority ranking
type PriorityEntry struct {
	StakeholderID string `json:"stakeholderId"`
	Name          string `json:"name"`
	Score         int    `json:"priorityScore"`
	Rank          int    `json:"rank"`
}
