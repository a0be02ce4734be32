package facultyapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mitchellh/mapstructure"
)

// Analysis is the detailed comparison between the interests and one match.
// A non-empty Error suppresses every other field.
type Analysis struct {
	AlignmentScore              float64  `json:"alignment_score"`
	Strengths                   []string `json:"strengths"`
	PotentialCollaborationAreas []string `json:"potential_collaboration_areas"`
	SupervisionStyle            string   `json:"supervision_style"`
	ResearchEnvironment         string   `json:"research_environment"`
	Recommendations             []string `json:"recommendations"`
	Error                       string   `json:"error"`
}

type analysisRequest struct {
	Interests string `json:"interests"`
}

type analysisResponse struct {
	envelope
	Analysis map[string]any `json:"analysis"`
}

var errNoAnalysis = errors.New("response has no analysis")

// Analyze requests the detailed analysis of the match at index.
func (c *Client) Analyze(ctx context.Context, index int, interests string) (*Analysis, error) {
	var resp analysisResponse
	path := fmt.Sprintf(analyzePath, index)
	if err := c.call(ctx, EndpointAnalyze, http.MethodPost, path, analysisRequest{Interests: interests}, &resp); err != nil {
		return nil, err
	}

	if resp.Analysis == nil {
		return nil, fmt.Errorf("%s: %w", EndpointAnalyze, errNoAnalysis)
	}

	analysis, err := decodeAnalysis(resp.Analysis)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EndpointAnalyze, err)
	}

	return analysis, nil
}

// decodeAnalysis is lenient since the analysis is written by a language model:
// numbers may come as strings and lists as single strings.
func decodeAnalysis(raw map[string]any) (*Analysis, error) {
	var analysis Analysis

	cfg := &mapstructure.DecoderConfig{
		Result:           &analysis,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}

	return &analysis, nil
}
