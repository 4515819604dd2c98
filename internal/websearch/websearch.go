// Package websearch is the web-lookup collaborator: a keyword-gated,
// topic-keyed source of external context for non-payroll questions.
package websearch

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"capbot/internal/shared/textnorm"
)

const selicURL = "https://www.bcb.gov.br/controleinflacao/historicotaxasjuros"

// Result is the structured content handed to the generative backend.
type Result struct {
	Content string `json:"content"`
	Source  string `json:"source"`
	URL     string `json:"url"`
}

// Searcher is the collaborator contract consumed by the chat service.
type Searcher interface {
	Search(ctx context.Context, query string) (Result, bool)
}

// Financial, economic, sports and weather vocabulary; looser than any
// payroll keyword so the two gates never compete.
var searchableWords = []string{
	"taxa selic", "selic", "inflacao", "ibovespa", "dolar",
	"euro", "bitcoin", "crypto", "economia", "mercado", "bolsa",
	"noticias", "atual", "hoje", "agora", "tempo", "clima", "temperatura",
	"formula 1", "f1", "gp", "grand prix", "corrida", "piloto",
	"vencedor", "venceu", "resultado", "classificacao",
}

// IsSearchable is the web-search-worthiness gate.
func IsSearchable(message string) bool {
	msg := textnorm.Fold(textnorm.CleanMessage(message))
	for _, w := range searchableWords {
		if strings.Contains(msg, w) {
			return true
		}
	}
	return false
}

type Service struct {
	client *http.Client
}

func NewService(timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{
		client: &http.Client{Timeout: timeout},
	}
}

// Search resolves a query to topic content. Only the Selic topic attempts
// a live fetch; everything else is a curated pointer to an official
// source, and any fetch failure degrades to the curated text.
func (s *Service) Search(ctx context.Context, query string) (Result, bool) {
	msg := textnorm.Fold(textnorm.CleanMessage(query))

	switch {
	case strings.Contains(msg, "selic"):
		return s.searchSelic(ctx), true

	case containsAny(msg, "inflacao", "economia", "mercado", "ibovespa", "dolar", "bolsa"):
		return Result{
			Content: "Para informações atualizadas sobre a economia brasileira, consulte os sites oficiais do Banco Central do Brasil e do IBGE.",
			Source:  "Fontes oficiais de economia",
			URL:     "https://www.bcb.gov.br",
		}, true

	case containsAny(msg, "tempo", "clima", "temperatura"):
		return Result{
			Content: "Para previsão do tempo, consulte o Instituto Nacional de Meteorologia (INMET).",
			Source:  "INMET - Instituto Nacional de Meteorologia",
			URL:     "https://www.inmet.gov.br",
		}, true

	case containsAny(msg, "formula 1", "f1", "grand prix", "gp", "corrida", "piloto"):
		return Result{
			Content: "Para resultados de corridas, classificação e notícias de Fórmula 1, consulte o site oficial da categoria.",
			Source:  "Fórmula 1 - Site Oficial",
			URL:     "https://www.formula1.com",
		}, true
	}

	return Result{}, false
}

func (s *Service) searchSelic(ctx context.Context) Result {
	canned := Result{
		Content: "A taxa Selic é a taxa básica de juros da economia brasileira, definida pelo Copom. Consulte o histórico oficial no site do Banco Central do Brasil.",
		Source:  "Banco Central do Brasil - " + selicURL,
		URL:     selicURL,
	}

	page, err := s.fetchText(ctx, selicURL)
	if err != nil {
		zap.L().Warn("selic fetch failed, using curated content", zap.Error(err))
		return canned
	}

	canned.Content = "Taxa Selic (Banco Central do Brasil): " + page
	return canned
}

func (s *Service) fetchText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "capbot/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &unexpectedStatusError{status: resp.StatusCode}
	}

	return extractText(resp.Body, 1000)
}

type unexpectedStatusError struct {
	status int
}

func (e *unexpectedStatusError) Error() string {
	return "unexpected status " + http.StatusText(e.status)
}

func containsAny(msg string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(msg, w) {
			return true
		}
	}
	return false
}
