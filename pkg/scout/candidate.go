// Package scout discovers, scores, inspects, and ranks candidate
// repositories for a stated requirement.
package scout

import "sort"

// Candidate is one repository under consideration. Values flow through the
// ranking stages by copy; stages return updated candidates rather than
// mutating shared state.
type Candidate struct {
	Name        string `json:"name"`
	SourceURL   string `json:"source_url"`
	Description string `json:"description"`
	Stars       int    `json:"stars"`
	MatchScore  int    `json:"match_score"`
	Rationale   string `json:"rationale"`
}

// sortByScore orders candidates by score descending. The sort is stable so
// equal scores keep their discovery order.
func sortByScore(cs []Candidate) {
	sort.SliceStable(cs, func(i, j int) bool {
		return cs[i].MatchScore > cs[j].MatchScore
	})
}
