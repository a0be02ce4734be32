package view

import "github.com/spigell/facultymatch/internal/facultyapi"

// Section headings of the analysis modal, in display order.
const (
	HeadingScore         = "Alignment Score"
	HeadingStrengths     = "Strengths"
	HeadingCollaboration = "Potential Collaboration Areas"
	HeadingSupervision   = "Supervision Style"
	HeadingEnvironment   = "Research Environment"
	HeadingRecommended   = "Recommendations"
)

// ScoreBar is the alignment score progress indicator. Width is a percentage
// and is not clamped.
type ScoreBar struct {
	Score float64 `json:"score" yaml:"score"`
	Width float64 `json:"width" yaml:"width"`
	Label string  `json:"label" yaml:"label"`
}

// Section is an optional block of the analysis. Either Items or Text is set.
type Section struct {
	Heading string   `json:"heading" yaml:"heading"`
	Items   []string `json:"items,omitempty" yaml:"items,omitempty"`
	Text    string   `json:"text,omitempty" yaml:"text,omitempty"`
}

// AnalysisModal is the content of the detailed analysis dialog.
type AnalysisModal struct {
	Loading  bool      `json:"loading,omitempty" yaml:"loading,omitempty"`
	Error    string    `json:"error,omitempty" yaml:"error,omitempty"`
	Warning  string    `json:"warning,omitempty" yaml:"warning,omitempty"`
	Score    *ScoreBar `json:"score,omitempty" yaml:"score,omitempty"`
	Sections []Section `json:"sections,omitempty" yaml:"sections,omitempty"`
}

// LoadingModal is shown while the analysis request is outstanding.
func LoadingModal() AnalysisModal {
	return AnalysisModal{Loading: true}
}

// ErrorModal replaces the modal content with a failure message.
func ErrorModal(message string) AnalysisModal {
	return AnalysisModal{Error: message}
}

// NewAnalysisModal renders an analysis. An analysis error hides everything else.
func NewAnalysisModal(a *facultyapi.Analysis) AnalysisModal {
	if a.Error != "" {
		return AnalysisModal{Warning: a.Error}
	}

	modal := AnalysisModal{
		Score: &ScoreBar{
			Score: a.AlignmentScore,
			Width: a.AlignmentScore * 10,
			Label: FormatScore(a.AlignmentScore) + "/10",
		},
	}

	if len(a.Strengths) > 0 {
		modal.Sections = append(modal.Sections, Section{Heading: HeadingStrengths, Items: a.Strengths})
	}
	if len(a.PotentialCollaborationAreas) > 0 {
		modal.Sections = append(modal.Sections, Section{Heading: HeadingCollaboration, Items: a.PotentialCollaborationAreas})
	}
	if a.SupervisionStyle != "" {
		modal.Sections = append(modal.Sections, Section{Heading: HeadingSupervision, Text: a.SupervisionStyle})
	}
	if a.ResearchEnvironment != "" {
		modal.Sections = append(modal.Sections, Section{Heading: HeadingEnvironment, Text: a.ResearchEnvironment})
	}
	if len(a.Recommendations) > 0 {
		modal.Sections = append(modal.Sections, Section{Heading: HeadingRecommended, Items: a.Recommendations})
	}

	return modal
}
