// Package sanitize normalizes user-provided form input before it reaches the
// prompt builder. It does not escape anything: the values end up in a natural
// language prompt, not in markup or code.
package sanitize

import (
	"strings"

	"book-recommender/backend/internal/model"

	"golang.org/x/text/unicode/norm"
)

// Field normalizes a single free-text field to NFC and trims surrounding space.
// NFC keeps visually identical titles (e.g. composed vs decomposed accents)
// comparing equal in the suggestion history.
func Field(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// Exclusions splits a comma-separated list of books or authors.
// Blank items are dropped, order is kept.
func Exclusions(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if item := Field(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Preferences normalizes raw form or flag values into validated Preferences.
// Blank genre or language is not an error here, see model.Preferences.Complete.
func Preferences(genre, language, region, exclude string, paragraphs int) (model.Preferences, error) {
	r, err := model.ParseRegion(Field(region))
	if err != nil {
		return model.Preferences{}, err
	}
	prefs := model.Preferences{
		Genre:            Field(genre),
		Language:         Field(language),
		Region:           r,
		ManualExclusions: Exclusions(exclude),
		Paragraphs:       paragraphs,
	}
	if err := prefs.Validate(); err != nil {
		return model.Preferences{}, err
	}
	return prefs, nil
}
