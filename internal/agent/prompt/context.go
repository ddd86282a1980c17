package prompt

import (
	"fmt"
	"strings"

	"book-recommender/backend/internal/model"
)

// MergeExclusions combines manual exclusions with previously suggested titles.
// Blank entries are dropped and the first occurrence of each value wins, so the
// result has set semantics with a stable order (manual entries first).
func MergeExclusions(manual, history []string) []string {
	seen := make(map[string]bool, len(manual)+len(history))
	merged := make([]string, 0, len(manual)+len(history))
	for _, list := range [][]string{manual, history} {
		for _, s := range list {
			s = strings.TrimSpace(s)
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			merged = append(merged, s)
		}
	}
	return merged
}

// BuildExclusionClause renders the exclusion sentence, or "" when nothing is excluded
func BuildExclusionClause(manual, history []string) string {
	merged := MergeExclusions(manual, history)
	if len(merged) == 0 {
		return ""
	}
	return fmt.Sprintf(ExclusionTemplate, strings.Join(merged, ", "))
}

// BuildRegionClause renders the region preference, or "" for no preference
func BuildRegionClause(region model.Region) string {
	if region == "" || region == model.RegionNoPreference {
		return ""
	}
	return fmt.Sprintf(RegionTemplate, region)
}
