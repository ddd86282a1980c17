package prompt

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"book-recommender/backend/internal/model"
)

// HintPicker selects the literary hint for one request
type HintPicker func() string

// RandomHint draws a hint uniformly from LiteraryHints
func RandomHint() string {
	return LiteraryHints[rand.IntN(len(LiteraryHints))]
}

// FixedHint returns a picker that always yields hint
func FixedHint(hint string) HintPicker {
	return func() string { return hint }
}

// Builder constructs prompts for the recommender
type Builder struct{}

// NewBuilder creates a new prompt builder
func NewBuilder() *Builder {
	return &Builder{}
}

// BuildRecommendationPrompt renders the instruction sent to the model.
// User text is interpolated as-is.
func (b *Builder) BuildRecommendationPrompt(prefs model.Preferences, history []string, hint string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(BaseInstruction, prefs.Genre))
	sb.WriteString(BuildExclusionClause(prefs.ManualExclusions, history))
	sb.WriteString(BuildRegionClause(prefs.Region))
	sb.WriteString(fmt.Sprintf(HintInstruction, hint))
	sb.WriteString(fmt.Sprintf(SummaryInstruction, prefs.Paragraphs, prefs.Language))
	return sb.String()
}
