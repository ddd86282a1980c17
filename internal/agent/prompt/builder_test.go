package prompt

import (
	"strings"
	"testing"

	"book-recommender/backend/internal/model"
)

func TestBuildRecommendationPrompt_FullScenario(t *testing.T) {
	prefs := model.Preferences{
		Genre:            "Sci-fi",
		Language:         "English",
		Region:           model.RegionJapanese,
		ManualExclusions: []string{"Dune", "Foundation"},
		Paragraphs:       1,
	}
	hint := LiteraryHints[0]

	got := NewBuilder().BuildRecommendationPrompt(prefs, nil, hint)

	want := "Recommend a unique, high-quality book in the Sci-fi genre. " +
		"Exclude the following: Dune, Foundation. " +
		"Prefer books from Japanese literature. " +
		"Avoid well-known commercial or mainstream titles. Instead, focus on underrepresented literary voices. " +
		"Summarize the recommended book in 1 short paragraph(s) in English."
	if got != want {
		t.Fatalf("unexpected prompt:\n got: %s\nwant: %s", got, want)
	}

	// Segment order
	segments := []string{
		"Sci-fi genre",
		"Exclude the following:",
		"Prefer books from Japanese literature.",
		hint,
		"1 short paragraph(s) in English",
	}
	last := -1
	for _, seg := range segments {
		idx := strings.Index(got, seg)
		if idx < 0 {
			t.Fatalf("prompt missing segment %q", seg)
		}
		if idx <= last {
			t.Errorf("segment %q out of order", seg)
		}
		last = idx
	}
}

func TestBuildRecommendationPrompt_NoOptionalClauses(t *testing.T) {
	prefs := model.Preferences{
		Genre:      "Literary Fiction",
		Language:   "French",
		Region:     model.RegionNoPreference,
		Paragraphs: 2,
	}

	got := NewBuilder().BuildRecommendationPrompt(prefs, nil, "prioritize philosophical or existential themes")

	if strings.Contains(got, "Exclude the following") {
		t.Error("prompt should not contain an exclusion clause")
	}
	if strings.Contains(got, "Prefer books from") {
		t.Error("prompt should not contain a region clause")
	}
	if !strings.HasPrefix(got, "Recommend a unique, high-quality book in the Literary Fiction genre. Avoid well-known") {
		t.Errorf("unexpected prompt start: %s", got)
	}
	if !strings.HasSuffix(got, "in 2 short paragraph(s) in French.") {
		t.Errorf("unexpected prompt end: %s", got)
	}
}

func TestBuildRecommendationPrompt_RegionClauseAppearsOnce(t *testing.T) {
	for _, region := range model.Regions() {
		prefs := model.Preferences{Genre: "Horror", Language: "English", Region: region, Paragraphs: 2}
		got := NewBuilder().BuildRecommendationPrompt(prefs, nil, LiteraryHints[1])

		count := strings.Count(got, "Prefer books from")
		if region == model.RegionNoPreference {
			if count != 0 {
				t.Errorf("region %q: expected no region clause, found %d", region, count)
			}
			continue
		}
		if count != 1 {
			t.Errorf("region %q: expected exactly one region clause, found %d", region, count)
		}
		if !strings.Contains(got, "Prefer books from "+string(region)+" literature. ") {
			t.Errorf("region %q: clause does not name the region: %s", region, got)
		}
	}
}

func TestBuildRecommendationPrompt_HistoryIsExcluded(t *testing.T) {
	prefs := model.Preferences{
		Genre:            "Fantasy",
		Language:         "English",
		Region:           model.RegionNoPreference,
		ManualExclusions: []string{"The Hobbit", "Earthsea"},
		Paragraphs:       3,
	}
	history := []string{"Earthsea", "Piranesi"}

	got := NewBuilder().BuildRecommendationPrompt(prefs, history, LiteraryHints[2])

	if !strings.Contains(got, "Exclude the following: The Hobbit, Earthsea, Piranesi. ") {
		t.Errorf("unexpected exclusion clause in: %s", got)
	}
}

func TestMergeExclusions_SetSemantics(t *testing.T) {
	tests := []struct {
		name    string
		manual  []string
		history []string
		want    []string
	}{
		{"both empty", nil, nil, []string{}},
		{"manual only", []string{"Dune"}, nil, []string{"Dune"}},
		{"history only", nil, []string{"Solaris"}, []string{"Solaris"}},
		{"overlap", []string{"Dune", "Solaris"}, []string{"Solaris", "Ubik"}, []string{"Dune", "Solaris", "Ubik"}},
		{"duplicates within manual", []string{"Dune", "Dune", " Dune "}, nil, []string{"Dune"}},
		{"blanks dropped", []string{"", "  "}, []string{""}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeExclusions(tt.manual, tt.history)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("index %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuildExclusionClause_EachEntryOnce(t *testing.T) {
	manual := []string{"Dune", "Foundation", "Hyperion"}
	history := []string{"Foundation", "Hyperion", "Blindsight", "Dune"}

	clause := BuildExclusionClause(manual, history)

	body := strings.TrimSuffix(strings.TrimPrefix(clause, "Exclude the following: "), ". ")
	entries := strings.Split(body, ", ")
	if len(entries) != 4 {
		t.Fatalf("expected 4 distinct entries, got %v", entries)
	}
	for _, title := range []string{"Dune", "Foundation", "Hyperion", "Blindsight"} {
		if n := strings.Count(clause, title); n != 1 {
			t.Errorf("%q appears %d times in %q", title, n, clause)
		}
	}

	if BuildExclusionClause(nil, nil) != "" {
		t.Error("expected empty clause for no exclusions")
	}
}

func TestRandomHint_FromCatalog(t *testing.T) {
	for i := 0; i < 100; i++ {
		if h := RandomHint(); !isLiteraryHint(h) {
			t.Fatalf("RandomHint returned %q which is not in the catalog", h)
		}
	}
	if len(LiteraryHints) != 18 {
		t.Errorf("expected 18 hints, got %d", len(LiteraryHints))
	}
}

func TestFixedHint(t *testing.T) {
	pick := FixedHint("x")
	if pick() != "x" || pick() != "x" {
		t.Error("FixedHint should always return the same hint")
	}
}

// isLiteraryHint reports whether s is one of the catalog phrases
func isLiteraryHint(s string) bool {
	for _, h := range LiteraryHints {
		if h == s {
			return true
		}
	}
	return false
}
