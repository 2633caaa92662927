package service

import (
	"fmt"
	"hash/fnv"

	"stakehub/internal/model"
	"stakehub/internal/priority"
)

var mockInsightsByInfluence = map[priority.Level][]string{
	priority.VeryHigh: {
		"This stakeholder holds significant decision-making authority and should be engaged regularly with strategic-level communications. Their high influence requires careful relationship management and proactive updates on major initiatives. Consider scheduling regular executive briefings and ensuring they have early visibility into important decisions.",
		"As a key decision maker, this stakeholder's support is crucial for project success. They likely prefer high-level summaries with clear business impact and ROI metrics. Engagement should focus on strategic alignment and long-term value proposition. Regular face-to-face meetings are recommended.",
	},
	priority.High: {
		"This stakeholder has substantial influence within their domain and can significantly impact project outcomes. They should be kept informed of major developments and consulted on decisions that affect their area of responsibility. Regular communication and relationship building are important.",
		"Strong influencer who can serve as a project champion or create obstacles if not properly engaged. Focus on building trust through consistent communication and demonstrating value. They may appreciate being involved in strategic planning discussions.",
	},
	priority.Medium: {
		"This stakeholder has moderate influence and should be engaged through regular updates and targeted communications. They may have valuable insights and can help with implementation. Consider involving them in working groups or advisory capacities.",
		"Steady contributor who can provide valuable input and support. Engagement should be consistent but not overwhelming. They likely appreciate being kept informed and having opportunities to provide feedback on relevant initiatives.",
	},
	priority.Low: {
		"While having lower direct influence, this stakeholder may represent important perspectives or constituencies. Keep them informed through standard communication channels and be responsive to their concerns. They may have valuable insights on implementation impacts.",
		"Limited direct influence but may have important connections or represent key user groups. Maintain positive relationships through inclusive communication and consider their feedback on user experience and practical implementation aspects.",
	},
}

var mockCategoryAdditions = map[model.Category]string{
	model.CategoryCustomer:  " As a customer stakeholder, their satisfaction directly impacts business success. Focus on value delivery and addressing their specific needs and concerns.",
	model.CategoryInvestor:  " As an investor, they are primarily concerned with returns and growth metrics. Communications should emphasize business value, market opportunity, and risk management.",
	model.CategoryRegulator: " As a regulatory stakeholder, ensure all compliance requirements are met and maintain transparent communication about adherence to relevant standards and regulations.",
	model.CategorySupplier:  " As a supplier stakeholder, focus on partnership benefits, integration efficiency, and mutual value creation opportunities.",
}

var mockSummaries = []string{
	"Productive discussion covering key project milestones and stakeholder expectations. Strong alignment achieved on next steps and timeline.",
	"Comprehensive review of current status with positive feedback on team performance. Several action items identified for follow-up.",
	"Strategic planning session with good participation and valuable insights shared. Stakeholder expressed satisfaction with progress.",
	"Regular check-in meeting covering operational updates and upcoming deliverables. No major concerns raised.",
	"Detailed technical discussion with stakeholder questions addressed satisfactorily. Additional documentation requested.",
}

var mockActionItems = []string{
	"• Follow up with technical team on implementation details\n• Schedule next review meeting within 2 weeks\n• Prepare updated project timeline",
	"• Share updated documentation with stakeholder\n• Coordinate with relevant teams on resource allocation\n• Set up follow-up call to address remaining questions",
	"• Prepare executive summary for senior leadership\n• Update project risk register\n• Schedule stakeholder feedback session",
	"• Continue with planned activities\n• Monitor progress against established milestones\n• Provide weekly status updates",
	"• Research additional requirements\n• Prepare technical specifications document\n• Arrange training session for end users",
}

// pick selects a stable element for id so reruns give the same text
func pick(options []string, id string) string {
	h := fnv.New32a()
	h.Write([]byte(id))
	return options[h.Sum32()%uint32(len(options))]
}

func mockInsight(s *model.Stakeholder) string {
	templates, ok := mockInsightsByInfluence[s.Influence]
	if !ok {
		templates = mockInsightsByInfluence[priority.Medium]
	}
	return pick(templates, s.ID) + mockCategoryAdditions[s.Category]
}

func mockSummary(e *model.Engagement) model.EngagementSummary {
	sentiment := e.Sentiment
	if sentiment == "" {
		sentiment = model.SentimentNeutral
	}
	return model.EngagementSummary{
		Summary:     pick(mockSummaries, e.ID),
		ActionItems: pick(mockActionItems, e.ID),
		Sentiment:   sentiment,
	}
}

// meetingNotes synthesizes notes from an engagement record so completed
// engagements without notes can still be summarized.
func meetingNotes(e *model.Engagement, s *model.Stakeholder) string {
	switch e.Type {
	case model.EngagementEmail:
		return fmt.Sprintf(`Email exchange with %[1]s regarding %[2]s

Key topics covered:
- Project status update and current milestones
- Resource requirements and allocation
- Timeline adjustments and impact assessment
- Stakeholder concerns and feedback

Response from %[1]s:
%[3]s

Action items identified:
- Address specific concerns raised
- Provide additional documentation
- Schedule follow-up discussion if needed
`, s.Name, e.Title, orDefault(e.Outcomes, "Acknowledged update and provided constructive feedback."))

	case model.EngagementPresentation:
		return fmt.Sprintf(`Presentation to %[1]s - %[2]s

Presentation covered:
- Current project status and achievements
- Key metrics and performance indicators
- Upcoming milestones and deliverables
- Risk assessment and mitigation strategies

Stakeholder Questions & Feedback:
- Asked detailed questions about implementation approach
- Expressed interest in specific technical aspects
- Provided valuable insights from their perspective
- %[3]s

Follow-up actions:
- Address specific questions raised
- Provide additional technical details
- Schedule implementation review meeting
`, s.Name, e.Title, orDefault(e.Outcomes, "Overall positive reception with actionable feedback."))
	}

	return fmt.Sprintf(`Meeting with %[1]s - %[2]s

Attendees: Project team, %[1]s
Duration: %[3]d minutes

Discussion Points:
- Reviewed current project status and milestones
- Discussed %[1]s's requirements and expectations
- Addressed questions about timeline and resource allocation
- Covered risk mitigation strategies and contingency planning

Key Outcomes:
%[4]s

Stakeholder Feedback:
- Generally satisfied with progress to date
- Raised some concerns about timeline pressure
- Requested more frequent status updates
- Emphasized importance of quality deliverables

Next Steps:
- Team to prepare detailed implementation plan
- Schedule follow-up meeting in 2 weeks
- Provide weekly status email updates
`, s.Name, e.Title, e.DurationMinutes, orDefault(e.Outcomes, "Positive discussion with clear next steps identified."))
}
