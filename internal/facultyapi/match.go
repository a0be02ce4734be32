package facultyapi

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// Match is one faculty member returned by the matching endpoint.
// Fields are never omitted on encoding so exported matches keep the shape the
// server sent.
type Match struct {
	Name              string   `json:"name"`
	Title             string   `json:"title"`
	Department        string   `json:"department"`
	Email             string   `json:"email"`
	SimilarityScore   float64  `json:"similarity_score"`
	MatchReasons      []string `json:"match_reasons"`
	ResearchInterests []string `json:"research_interests"`
	Bio               string   `json:"bio"`
	ProfileURL        string   `json:"profile_url"`
	GoogleScholar     string   `json:"google_scholar"`
	ResearchGate      string   `json:"research_gate"`
}

// MatchRequest carries the user interests and an optional OpenAI key.
// The key is forwarded as is.
type MatchRequest struct {
	Interests string `json:"interests"`
	OpenAIKey string `json:"openai_key"`
}

// MatchResult is the ranked list of matches and the totals.
type MatchResult struct {
	Matches       []Match `json:"matches"`
	TotalMatches  int     `json:"total_matches"`
	TotalProfiles int     `json:"total_profiles"`
}

type matchResponse struct {
	envelope
	MatchResult
}

// Match runs interest matching against the loaded profiles.
func (c *Client) Match(ctx context.Context, req MatchRequest) (*MatchResult, error) {
	var resp matchResponse
	if err := c.call(ctx, EndpointMatch, http.MethodPost, matchPath, req, &resp); err != nil {
		return nil, err
	}

	if resp.Matches == nil {
		resp.Matches = []Match{}
	}

	c.logger.Info("got matches",
		zap.Int("total_matches", resp.TotalMatches),
		zap.Int("total_profiles", resp.TotalProfiles),
		zap.Bool("api_key_set", req.OpenAIKey != ""),
	)

	return &resp.MatchResult, nil
}
