package model

import (
	"errors"
	"fmt"
	"strings"
)

// Region is the literature region a user may prefer
type Region string

const (
	RegionNoPreference    Region = "No Preference"
	RegionJapanese        Region = "Japanese"
	RegionRussian         Region = "Russian"
	RegionEuropean        Region = "European"
	RegionLatinAmerican   Region = "Latin American"
	RegionMiddleEastern   Region = "Middle Eastern"
	RegionAfrican         Region = "African"
	RegionSoutheastAsian  Region = "Southeast Asian"
	RegionEasternEuropean Region = "Eastern European"
)

const (
	MinParagraphs     = 1
	MaxParagraphs     = 5
	DefaultParagraphs = 2
)

var (
	ErrUnknownRegion     = errors.New("unknown region")
	ErrParagraphsOutside = errors.New("paragraph count out of range")
)

var regions = []Region{
	RegionNoPreference,
	RegionJapanese,
	RegionRussian,
	RegionEuropean,
	RegionLatinAmerican,
	RegionMiddleEastern,
	RegionAfrican,
	RegionSoutheastAsian,
	RegionEasternEuropean,
}

// Regions returns the selectable regions in display order
func Regions() []Region {
	out := make([]Region, len(regions))
	copy(out, regions)
	return out
}

// ParseRegion maps a region name to a Region. An empty name means no preference.
func ParseRegion(name string) (Region, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return RegionNoPreference, nil
	}
	for _, r := range regions {
		if string(r) == name {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRegion, name)
}

// Preferences is one form submission. It is rebuilt on every request.
type Preferences struct {
	Genre            string
	Language         string
	Region           Region
	ManualExclusions []string
	Paragraphs       int
}

// Complete reports whether enough input was given to request a recommendation
func (p Preferences) Complete() bool {
	return strings.TrimSpace(p.Genre) != "" && strings.TrimSpace(p.Language) != ""
}

// Validate checks the bounded fields. Genre and Language are not checked here,
// missing values just mean no request is made.
func (p Preferences) Validate() error {
	if p.Paragraphs < MinParagraphs || p.Paragraphs > MaxParagraphs {
		return fmt.Errorf("%w: %d (want %d-%d)", ErrParagraphsOutside, p.Paragraphs, MinParagraphs, MaxParagraphs)
	}
	if _, err := ParseRegion(string(p.Region)); err != nil {
		return err
	}
	return nil
}

// Recommendation is the post-processed model answer
type Recommendation struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Hint   string `json:"hint"`
	Prompt string `json:"prompt,omitempty"`
}
