package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stakehub/internal/model"
)

// fakeCompleter implements llm.Completer and counts calls
type fakeCompleter struct {
	available bool
	reply     string
	err       error
	calls     int
	prompts   []string
}

func (f *fakeCompleter) IsAvailable() bool { return f.available }

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestAssistant(f *fakeCompleter) *AssistantService {
	return NewAssistantService(f, zap.NewNop())
}

func TestAssistant_UnavailableNeverCallsCompleter(t *testing.T) {
	f := &fakeCompleter{available: false, reply: "should not be used"}
	a := newTestAssistant(f)
	ctx := context.Background()

	assert.Equal(t, NotAvailable, a.GenerateProfile(ctx, ProfileInput{Name: "Ann"}))
	assert.Equal(t, NotAvailable, a.DraftCommunication(ctx, CommunicationInput{Name: "Ann"}))
	assert.Equal(t, NotAvailable, a.SuggestEngagementStrategy(ctx, StrategyInput{Name: "Ann"}))
	assert.Equal(t, NotAvailable, a.ExtractActionItems(ctx, "notes"))
	assert.Equal(t, model.SentimentNeutral, a.AnalyzeSentiment(ctx, "great, positive"))
	assert.Equal(t, model.EngagementSummary{
		Summary:   NotAvailable,
		Sentiment: model.SentimentNeutral,
	}, a.SummarizeMeeting(ctx, "Ann", "notes"))

	assert.Zero(t, f.calls)
}

func TestAssistant_NilCompleterIsUnavailable(t *testing.T) {
	a := NewAssistantService(nil, zap.NewNop())
	assert.False(t, a.IsAvailable())
	assert.Equal(t, NotAvailable, a.GenerateProfile(context.Background(), ProfileInput{}))
}

func TestAssistant_PassThrough(t *testing.T) {
	f := &fakeCompleter{available: true, reply: "  raw model text\n"}
	a := newTestAssistant(f)
	ctx := context.Background()

	assert.Equal(t, "  raw model text\n", a.GenerateProfile(ctx, ProfileInput{Name: "Ann"}))
	assert.Equal(t, "  raw model text\n", a.DraftCommunication(ctx, CommunicationInput{Name: "Ann"}))
	assert.Equal(t, "  raw model text\n", a.SuggestEngagementStrategy(ctx, StrategyInput{Name: "Ann"}))
	assert.Equal(t, "  raw model text\n", a.ExtractActionItems(ctx, "notes"))
	assert.Equal(t, 4, f.calls)
}

func TestAssistant_UpstreamFailure(t *testing.T) {
	f := &fakeCompleter{available: true, err: errors.New("quota exceeded")}
	a := newTestAssistant(f)
	ctx := context.Background()

	assert.Equal(t, "Error generating profile: quota exceeded", a.GenerateProfile(ctx, ProfileInput{}))
	assert.Equal(t, "Error drafting communication: quota exceeded", a.DraftCommunication(ctx, CommunicationInput{}))
	assert.Equal(t, "Error generating strategy: quota exceeded", a.SuggestEngagementStrategy(ctx, StrategyInput{}))
	assert.Equal(t, "Error extracting action items: quota exceeded", a.ExtractActionItems(ctx, "x"))
	assert.Equal(t, model.SentimentNeutral, a.AnalyzeSentiment(ctx, "x"))
	assert.Equal(t, model.EngagementSummary{
		Summary:   "Error summarizing meeting: quota exceeded",
		Sentiment: model.SentimentNeutral,
	}, a.SummarizeMeeting(ctx, "Ann", "x"))
}

func TestAssistant_AnalyzeSentiment(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  model.Sentiment
	}{
		{"positive", "This was a great outcome, very positive feedback", model.SentimentPositive},
		{"negative", "Stakeholder was upset and negative about delays", model.SentimentNegative},
		{"neutral", "Routine update, nothing notable", model.SentimentNeutral},
		{"empty", "", model.SentimentNeutral},
		{"uppercase", "NEGATIVE. The tone is hostile.", model.SentimentNegative},
		{"both words favour positive", "mixed: positive on budget, negative on timeline", model.SentimentPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAssistant(&fakeCompleter{available: true, reply: tt.reply})
			assert.Equal(t, tt.want, a.AnalyzeSentiment(context.Background(), "text"))
		})
	}
}

func TestAssistant_SummarizeMeeting(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  model.EngagementSummary
	}{
		{
			name:  "whole reply is JSON",
			reply: `{"summary":"S","action_items":"A","sentiment":"POSITIVE","risks":"","follow_up":"F"}`,
			want:  model.EngagementSummary{Summary: "S", ActionItems: "A", Sentiment: model.SentimentPositive, Risks: "", FollowUp: "F"},
		},
		{
			name:  "JSON inside markdown fences",
			reply: "```json\n{\"summary\":\"S\",\"action_items\":\"A\",\"sentiment\":\"negative\",\"risks\":\"R\",\"follow_up\":\"F\"}\n```",
			want:  model.EngagementSummary{Summary: "S", ActionItems: "A", Sentiment: model.SentimentNegative, Risks: "R", FollowUp: "F"},
		},
		{
			name:  "missing fields default",
			reply: `{"summary":"only this"}`,
			want:  model.EngagementSummary{Summary: "only this", Sentiment: model.SentimentNeutral},
		},
		{
			name:  "unknown sentiment coerced",
			reply: `{"summary":"S","sentiment":"Mixed"}`,
			want:  model.EngagementSummary{Summary: "S", Sentiment: model.SentimentNeutral},
		},
		{
			name:  "non-string values rendered as JSON",
			reply: `{"summary":"S","action_items":["call back", "send deck"],"sentiment":"neutral","risks":3}`,
			want:  model.EngagementSummary{Summary: "S", ActionItems: `["call back","send deck"]`, Sentiment: model.SentimentNeutral, Risks: "3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAssistant(&fakeCompleter{available: true, reply: tt.reply})
			assert.Equal(t, tt.want, a.SummarizeMeeting(context.Background(), "Ann", "notes"))
		})
	}
}

func TestAssistant_SummarizeMeetingDegraded(t *testing.T) {
	prose := "The meeting went fine. We agreed to meet again next week."
	a := newTestAssistant(&fakeCompleter{available: true, reply: prose})

	got := a.SummarizeMeeting(context.Background(), "Ann", "notes")
	assert.Equal(t, prose, got.Summary)
	assert.Equal(t, model.SentimentNeutral, got.Sentiment)
	assert.Equal(t, "Unable to extract structured action items from response", got.ActionItems)
	assert.Equal(t, "Unable to extract structured risks from response", got.Risks)
	assert.Equal(t, "Unable to extract structured follow-up actions from response", got.FollowUp)
}

func TestParseSummary_BrokenBracesDegrade(t *testing.T) {
	reply := "here {not json} and {also not}"
	got, outcome := parseSummary(reply)
	assert.Equal(t, "degraded", outcome)
	assert.Equal(t, reply, got.Summary)
}

func TestParseSummary_NullIsNotAnObject(t *testing.T) {
	_, outcome := parseSummary("null")
	assert.Equal(t, "degraded", outcome)
}

func TestPrompts(t *testing.T) {
	f := &fakeCompleter{available: true, reply: "ok"}
	a := newTestAssistant(f)
	ctx := context.Background()

	a.GenerateProfile(ctx, ProfileInput{Name: "Ann", Organization: "Acme"})
	a.DraftCommunication(ctx, CommunicationInput{Name: "Ann", Purpose: "kick-off", CommunicationType: "meeting request"})
	a.SummarizeMeeting(ctx, "Ann", "we talked")
	a.SuggestEngagementStrategy(ctx, StrategyInput{Name: "Ann", Influence: "very_high"})
	a.ExtractActionItems(ctx, "call Bob")
	require.Len(t, f.prompts, 5)

	profile := f.prompts[0]
	assert.Contains(t, profile, "Name: Ann")
	assert.Contains(t, profile, "Organization: Acme")
	assert.Contains(t, profile, "Title: N/A")
	assert.Contains(t, profile, "6. Key talking points for meetings")

	draft := f.prompts[1]
	assert.True(t, strings.HasPrefix(draft, "Draft a meeting request for the following stakeholder:"))
	assert.Contains(t, draft, "Purpose: kick-off")
	assert.Contains(t, draft, "- Influence level: medium")
	assert.Contains(t, draft, "- Category: internal")

	meeting := f.prompts[2]
	assert.Contains(t, meeting, "stakeholder Ann:")
	assert.Contains(t, meeting, "we talked")
	assert.Contains(t, meeting, `"follow_up"`)
	assert.NotContains(t, meeting, "```")

	strategy := f.prompts[3]
	assert.Contains(t, strategy, "- Influence: very_high")
	assert.Contains(t, strategy, "- Interest: medium")
	assert.Contains(t, strategy, "No recent engagements")

	assert.Contains(t, f.prompts[4], `"call Bob"`)
	assert.Contains(t, f.prompts[4], "No specific action items identified.")
}
