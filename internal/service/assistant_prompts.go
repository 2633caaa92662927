package service

import (
	"fmt"
	"strings"

	"stakehub/internal/model"
)

// ProfileInput is the stakeholder data sent for profile generation
type ProfileInput struct {
	Name         string
	Title        string
	Organization string
	Department   string
	Category     string
}

// CommunicationInput is the data sent for drafting a message
type CommunicationInput struct {
	Name              string
	Title             string
	Organization      string
	Purpose           string
	CommunicationType string
	Influence         string
	Interest          string
	Category          string
}

// StrategyInput is the data sent for an engagement strategy. History is
// optional pre-rendered text, one engagement per line.
type StrategyInput struct {
	Name      string
	Influence string
	Interest  string
	Category  string
	Notes     string
	History   string
}

// NewProfileInput copies the prompt fields off a stakeholder
func NewProfileInput(s *model.Stakeholder) ProfileInput {
	return ProfileInput{
		Name:         s.Name,
		Title:        s.Title,
		Organization: s.Organization,
		Department:   s.Department,
		Category:     string(s.Category),
	}
}

// NewCommunicationInput copies the prompt fields off a stakeholder
func NewCommunicationInput(s *model.Stakeholder, commType model.CommunicationType, purpose string) CommunicationInput {
	return CommunicationInput{
		Name:              s.Name,
		Title:             s.Title,
		Organization:      s.Organization,
		Purpose:           purpose,
		CommunicationType: commType.Label(),
		Influence:         string(s.Influence),
		Interest:          string(s.Interest),
		Category:          string(s.Category),
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func buildProfilePrompt(in ProfileInput) string {
	return fmt.Sprintf(`Based on the following basic stakeholder information, generate a comprehensive analysis:

Name: %s
Title: %s
Organization: %s
Department: %s
Category: %s

Please provide:
1. Likely influence level and reasons
2. Potential interests and concerns
3. Recommended engagement strategies
4. Potential risks or challenges
5. Communication preferences
6. Key talking points for meetings

Format your response as a structured analysis.`,
		orDefault(in.Name, "N/A"),
		orDefault(in.Title, "N/A"),
		orDefault(in.Organization, "N/A"),
		orDefault(in.Department, "N/A"),
		orDefault(in.Category, "N/A"),
	)
}

func buildCommunicationPrompt(in CommunicationInput) string {
	commType := orDefault(in.CommunicationType, string(model.CommEmail))
	return fmt.Sprintf(`Draft a %s for the following stakeholder:

Stakeholder: %s - %s
Organization: %s
Purpose: %s

Consider their:
- Influence level: %s
- Interest level: %s
- Category: %s

Please draft a professional %s that:
1. Uses appropriate tone for their position
2. Is concise and respectful of their time
3. Clearly states the purpose
4. Includes a clear call to action if needed
5. Maintains professional relationships`,
		commType,
		orDefault(in.Name, "N/A"),
		orDefault(in.Title, "N/A"),
		orDefault(in.Organization, "N/A"),
		in.Purpose,
		orDefault(in.Influence, "medium"),
		orDefault(in.Interest, "medium"),
		orDefault(in.Category, "internal"),
		commType,
	)
}

// The JSON skeleton must stay free of code fences; the normalizer relies on
// the model echoing this shape.
func buildMeetingPrompt(stakeholderName, notes string) string {
	return fmt.Sprintf(`Analyze the following meeting notes with stakeholder %s:

Meeting Notes:
%s

Please provide your analysis in the following JSON format ONLY. Do not include any other text or formatting:

{
    "summary": "A concise summary of key discussion points",
    "action_items": "List of action items with responsible parties and deadlines",
    "sentiment": "positive, neutral, or negative (lowercase only)",
    "risks": "Any risks or concerns identified",
    "follow_up": "Suggested follow-up actions"
}

Requirements:
1. Use only "positive", "neutral", or "negative" (lowercase) for sentiment
2. If no specific information is available for a field, use an empty string ""
3. Do not include any markdown formatting or code blocks
4. Return only valid JSON`,
		orDefault(stakeholderName, "N/A"),
		notes,
	)
}

func buildSentimentPrompt(text string) string {
	return fmt.Sprintf(`Analyze the sentiment of the following stakeholder communication:

"%s"

Classify the sentiment as: positive, neutral, or negative
Provide reasoning for your classification.

Respond with just the sentiment classification (positive/neutral/negative) followed by a brief explanation.`, text)
}

func buildStrategyPrompt(in StrategyInput) string {
	return fmt.Sprintf(`Based on the stakeholder profile and engagement history, suggest an optimal engagement strategy:

Stakeholder Profile:
- Name: %s
- Influence: %s
- Interest: %s
- Category: %s
- Notes: %s

Recent Engagement History:
%s

Please recommend:
1. Optimal frequency of engagement
2. Best communication channels
3. Key topics to focus on
4. Timing considerations
5. Specific tactics for building relationships
6. Warning signs to watch for`,
		orDefault(in.Name, "N/A"),
		orDefault(in.Influence, "medium"),
		orDefault(in.Interest, "medium"),
		orDefault(in.Category, "internal"),
		orDefault(in.Notes, "N/A"),
		orDefault(in.History, "No recent engagements"),
	)
}

func buildActionItemsPrompt(text string) string {
	return fmt.Sprintf(`Extract action items from the following text:

"%s"

Format each action item as:
- Action: [what needs to be done]
- Owner: [who is responsible]
- Deadline: [when it's due, if mentioned]
- Priority: [high/medium/low based on context]

Only extract clear, actionable items. If no action items are found, respond with "No specific action items identified."`, text)
}
