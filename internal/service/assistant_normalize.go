package service

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"stakehub/internal/metrics"
	"stakehub/internal/model"
)

// Placeholders for a summary that could not be parsed as JSON
const (
	unparsedActionItems = "Unable to extract structured action items from response"
	unparsedRisks       = "Unable to extract structured risks from response"
	unparsedFollowUp    = "Unable to extract structured follow-up actions from response"
)

// Greedy: first "{" through last "}". Nested or multiple objects may be
// mis-extracted; the whole-text parse runs first.
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// classifySentiment checks "positive" before "negative"; text holding both
// words is positive.
func classifySentiment(text string) model.Sentiment {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "positive"):
		return model.SentimentPositive
	case strings.Contains(lower, "negative"):
		return model.SentimentNegative
	}
	return model.SentimentNeutral
}

// parseSummary never fails. The returned outcome says which tier produced
// the result.
func parseSummary(text string) (model.EngagementSummary, string) {
	if summary, ok := decodeSummary(text); ok {
		return summary, metrics.OutcomeParsed
	}
	if match := jsonObjectPattern.FindString(text); match != "" {
		if summary, ok := decodeSummary(match); ok {
			return summary, metrics.OutcomeExtracted
		}
	}
	return model.EngagementSummary{
		Summary:     text,
		ActionItems: unparsedActionItems,
		Sentiment:   model.SentimentNeutral,
		Risks:       unparsedRisks,
		FollowUp:    unparsedFollowUp,
	}, metrics.OutcomeDegraded
}

func decodeSummary(text string) (model.EngagementSummary, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil || fields == nil {
		return model.EngagementSummary{}, false
	}

	sentiment, ok := fieldText(fields, "sentiment")
	if !ok {
		sentiment = string(model.SentimentNeutral)
	}

	return model.EngagementSummary{
		Summary:     fieldOrEmpty(fields, "summary"),
		ActionItems: fieldOrEmpty(fields, "action_items"),
		Sentiment:   normalizeSentiment(sentiment),
		Risks:       fieldOrEmpty(fields, "risks"),
		FollowUp:    fieldOrEmpty(fields, "follow_up"),
	}, true
}

// normalizeSentiment lowercases the label. Anything outside the three
// literals becomes neutral.
func normalizeSentiment(s string) model.Sentiment {
	label := model.Sentiment(strings.ToLower(strings.TrimSpace(s)))
	if !label.Valid() {
		return model.SentimentNeutral
	}
	return label
}

func fieldOrEmpty(fields map[string]json.RawMessage, key string) string {
	v, _ := fieldText(fields, key)
	return v
}

// fieldText returns a JSON string value as-is and any other value as
// compact JSON text. null counts as absent.
func fieldText(fields map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw), true
	}
	return buf.String(), true
}
