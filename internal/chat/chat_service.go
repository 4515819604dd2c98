package chat

import (
	"context"
	"time"

	"go.uber.org/zap"

	"capbot/internal/llm"
	"capbot/internal/query"
	"capbot/internal/websearch"
)

// Service implements the top-level dispatch policy: payroll gate first,
// then the web-search gate, then open conversation. Every path degrades to
// offline text instead of failing.
type Service interface {
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)
	Health(ctx context.Context) HealthResponse
}

type service struct {
	processor *query.Processor
	generator llm.Client
	searcher  websearch.Searcher // nil disables the web-search path
}

func NewService(processor *query.Processor, generator llm.Client, searcher websearch.Searcher) Service {
	return &service{
		processor: processor,
		generator: generator,
		searcher:  searcher,
	}
}

func (s *service) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	history := toHistory(req.ConversationHistory)

	if query.IsPayrollQuery(req.Message) {
		if result := s.processor.Process(req.Message); result.Handled {
			return s.composePayrollReply(ctx, req.Message, history, result), nil
		}
	}

	if s.searcher != nil && websearch.IsSearchable(req.Message) {
		if found, ok := s.searcher.Search(ctx, req.Message); ok {
			return s.composeWebReply(ctx, req.Message, history, found), nil
		}
		zap.L().Debug("web search produced no result", zap.String("query", req.Message))
	}

	reply, err := s.generator.Generate(ctx, req.Message, history, nil)
	if err != nil {
		return ChatResponse{}, err
	}
	return ChatResponse{Message: reply, Timestamp: time.Now()}, nil
}

// composePayrollReply hands the locally composed answer and its evidence to
// the backend for tone and formatting. Offline, the deterministic answer
// already carries every claim the evidence backs, so it goes out as is.
func (s *service) composePayrollReply(ctx context.Context, message string, history []llm.Message, result query.Result) ChatResponse {
	reply := result.Answer

	if !s.generator.Offline() {
		prompt := message + "\n\nResposta apurada na folha de pagamento: " + result.Answer
		if out, err := s.generator.Generate(ctx, prompt, history, result.Evidence); err == nil && out != "" {
			reply = out
		}
	}

	var sources []string
	for _, ev := range result.Evidence {
		sources = append(sources, ev.Source())
	}

	return ChatResponse{
		Message:   reply,
		Evidence:  result.Evidence,
		Sources:   sources,
		Timestamp: time.Now(),
	}
}

func (s *service) composeWebReply(ctx context.Context, message string, history []llm.Message, found websearch.Result) ChatResponse {
	reply := found.Content
	if !s.generator.Offline() {
		prompt := message + "\n\nInformações encontradas na web:\n" + found.Content + "\nFonte: " + found.Source
		if out, err := s.generator.Generate(ctx, prompt, history, nil); err == nil && out != "" {
			reply = out
		}
	}

	return ChatResponse{
		Message:   reply,
		Sources:   []string{found.Source},
		Timestamp: time.Now(),
	}
}

func (s *service) Health(ctx context.Context) HealthResponse {
	llmStatus := "active"
	if s.generator.Offline() {
		llmStatus = "offline"
	}
	webStatus := "disabled"
	if s.searcher != nil {
		webStatus = "active"
	}

	return HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Services: map[string]string{
			"record_store": "active",
			"llm_service":  llmStatus,
			"web_search":   webStatus,
		},
	}
}

func toHistory(messages []ChatMessage) []llm.Message {
	if len(messages) == 0 {
		return nil
	}
	history := make([]llm.Message, 0, len(messages))
	for _, m := range messages {
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}
	return history
}
