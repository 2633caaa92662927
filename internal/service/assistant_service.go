package service

import (
	"context"

	"go.uber.org/zap"

	"stakehub/internal/llm"
	"stakehub/internal/logging"
	"stakehub/internal/metrics"
	"stakehub/internal/model"
)

// NotAvailable is returned by text operations when no completion service
// is configured.
const NotAvailable = "AI service not available"

// Upstream failure prefixes for text operations
const (
	errPrefixProfile     = "Error generating profile: "
	errPrefixDraft       = "Error drafting communication: "
	errPrefixSummary     = "Error summarizing meeting: "
	errPrefixStrategy    = "Error generating strategy: "
	errPrefixActionItems = "Error extracting action items: "
)

// AssistantService builds prompts for the completion service and coerces
// its replies into fixed shapes. No method returns an error: an absent
// service, a failed call and an unparseable reply all map to values.
type AssistantService struct {
	llm llm.Completer
	log *zap.Logger
}

// NewAssistantService creates a new assistant service
func NewAssistantService(completer llm.Completer, log *zap.Logger) *AssistantService {
	return &AssistantService{
		llm: completer,
		log: log.Named("assistant"),
	}
}

// IsAvailable reports whether a completion service is configured
func (s *AssistantService) IsAvailable() bool {
	return s.llm != nil && s.llm.IsAvailable()
}

// GenerateProfile returns a free-text stakeholder analysis
func (s *AssistantService) GenerateProfile(ctx context.Context, in ProfileInput) string {
	return s.complete(ctx, "profile", errPrefixProfile, buildProfilePrompt(in))
}

// DraftCommunication returns a drafted message
func (s *AssistantService) DraftCommunication(ctx context.Context, in CommunicationInput) string {
	return s.complete(ctx, "draft", errPrefixDraft, buildCommunicationPrompt(in))
}

// SuggestEngagementStrategy returns free-text recommendations
func (s *AssistantService) SuggestEngagementStrategy(ctx context.Context, in StrategyInput) string {
	return s.complete(ctx, "strategy", errPrefixStrategy, buildStrategyPrompt(in))
}

// ExtractActionItems returns the action items found in text
func (s *AssistantService) ExtractActionItems(ctx context.Context, text string) string {
	return s.complete(ctx, "action_items", errPrefixActionItems, buildActionItemsPrompt(text))
}

// AnalyzeSentiment classifies text. Neutral when unavailable or on failure.
func (s *AssistantService) AnalyzeSentiment(ctx context.Context, text string) model.Sentiment {
	const op = "sentiment"
	if !s.IsAvailable() {
		metrics.ObserveAI(op, metrics.OutcomeUnavailable)
		return model.SentimentNeutral
	}

	reply, err := s.llm.Complete(ctx, buildSentimentPrompt(text))
	if err != nil {
		s.log.Error("error analyzing sentiment", zap.Error(err))
		metrics.ObserveAI(op, metrics.OutcomeError)
		return model.SentimentNeutral
	}

	metrics.ObserveAI(op, metrics.OutcomeOK)
	return classifySentiment(reply)
}

// SummarizeMeeting returns the five-field summary of meeting notes
func (s *AssistantService) SummarizeMeeting(ctx context.Context, stakeholderName, notes string) model.EngagementSummary {
	const op = "summary"
	if !s.IsAvailable() {
		metrics.ObserveAI(op, metrics.OutcomeUnavailable)
		return model.EngagementSummary{Summary: NotAvailable, Sentiment: model.SentimentNeutral}
	}

	reply, err := s.llm.Complete(ctx, buildMeetingPrompt(stakeholderName, notes))
	if err != nil {
		s.log.Error("error summarizing meeting", zap.Error(err))
		metrics.ObserveAI(op, metrics.OutcomeError)
		return model.EngagementSummary{Summary: errPrefixSummary + err.Error(), Sentiment: model.SentimentNeutral}
	}

	summary, outcome := parseSummary(reply)
	if outcome != metrics.OutcomeParsed {
		s.log.Warn("failed to parse JSON response, processing as text",
			zap.String("outcome", outcome),
			zap.String("response", logging.Truncate(reply, 100)),
		)
	}
	metrics.ObserveAI(op, outcome)
	return summary
}

func (s *AssistantService) complete(ctx context.Context, op, errPrefix, prompt string) string {
	if !s.IsAvailable() {
		metrics.ObserveAI(op, metrics.OutcomeUnavailable)
		return NotAvailable
	}

	reply, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		s.log.Error("completion failed", zap.String("operation", op), zap.Error(err))
		metrics.ObserveAI(op, metrics.OutcomeError)
		return errPrefix + err.Error()
	}

	metrics.ObserveAI(op, metrics.OutcomeOK)
	return reply
}
