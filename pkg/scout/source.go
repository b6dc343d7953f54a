package scout

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/reposcout/reposcout/pkg/integrations/github"
)

// DefaultLanguage biases searches toward backend modules when the caller
// doesn't specify a language.
const DefaultLanguage = "java"

const (
	searchPerPage = 5
	noDescription = "No description provided"
)

// Searcher is the search-index boundary the source queries.
type Searcher interface {
	SearchRepositories(ctx context.Context, query string, perPage int) ([]github.Repo, error)
}

// Source discovers candidate repositories for a requirement. When the live
// search is unavailable it substitutes a fixed built-in set so downstream
// stages always have input.
type Source struct {
	search   Searcher
	language string
	logger   *log.Logger
}

// NewSource creates a source. An empty language selects DefaultLanguage; a
// nil searcher means every discovery uses the fallback set.
func NewSource(search Searcher, language string, logger *log.Logger) *Source {
	if language == "" {
		language = DefaultLanguage
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Source{search: search, language: language, logger: logger}
}

// Discover returns candidates for the requirement in search-result order.
// The result is either entirely live search results or entirely the
// fallback set, never a mixture.
func (s *Source) Discover(ctx context.Context, requirement string) []Candidate {
	if s.search == nil {
		s.logger.Warn("no search client configured, using built-in candidate set")
		return FallbackCandidates()
	}

	query := fmt.Sprintf("%s language:%s", requirement, s.language)
	s.logger.Info("searching for candidates", "query", query)

	repos, err := s.search.SearchRepositories(ctx, query, searchPerPage)
	if err != nil {
		s.logger.Warn("candidate search failed, using built-in candidate set", "error", err)
		return FallbackCandidates()
	}
	if len(repos) == 0 {
		s.logger.Warn("candidate search returned no results, using built-in candidate set")
		return FallbackCandidates()
	}

	candidates := make([]Candidate, 0, len(repos))
	for _, r := range repos {
		desc := r.Description
		if desc == "" {
			desc = noDescription
		}
		candidates = append(candidates, Candidate{
			Name:        r.Name,
			SourceURL:   r.CloneURL,
			Description: desc,
			Stars:       r.Stars,
		})
	}
	return candidates
}

// FallbackCandidates is the fixed set used when live search is unavailable.
// It covers the three archetypes the scoring rules distinguish.
func FallbackCandidates() []Candidate {
	return []Candidate{
		{
			Name:        "jeecg-boot-module-demo",
			SourceURL:   "https://github.com/jeecgboot/jeecg-boot.git",
			Description: "Official JeecgBoot demo module. Contains standard CRUD patterns.",
			Stars:       3500,
		},
		{
			Name:        "jeepay-payment-system",
			SourceURL:   "https://github.com/jeequan/jeepay.git",
			Description: "Open source payment system. High complexity, standalone app.",
			Stars:       1200,
		},
		{
			Name:        "stripe-java-sdk",
			SourceURL:   "https://github.com/stripe/stripe-java.git",
			Description: "Official Stripe SDK. Low level library, not a module.",
			Stars:       5000,
		},
	}
}
