package model

import (
	"errors"
	"testing"
)

func TestParseRegion(t *testing.T) {
	tests := []struct {
		in      string
		want    Region
		wantErr bool
	}{
		{"", RegionNoPreference, false},
		{"No Preference", RegionNoPreference, false},
		{"Japanese", RegionJapanese, false},
		{" Latin American ", RegionLatinAmerican, false},
		{"japanese", "", true},
		{"Atlantis", "", true},
	}

	for _, tt := range tests {
		got, err := ParseRegion(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownRegion) {
				t.Errorf("ParseRegion(%q): expected ErrUnknownRegion, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRegion(%q): unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseRegion(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRegions_ReturnsCopy(t *testing.T) {
	rs := Regions()
	if len(rs) != 9 {
		t.Fatalf("expected 9 regions, got %d", len(rs))
	}
	if rs[0] != RegionNoPreference {
		t.Errorf("first region should be %q, got %q", RegionNoPreference, rs[0])
	}
	rs[0] = "mutated"
	if Regions()[0] != RegionNoPreference {
		t.Error("Regions() exposed internal slice")
	}
}

func TestPreferences_Complete(t *testing.T) {
	tests := []struct {
		genre, language string
		want            bool
	}{
		{"Sci-fi", "English", true},
		{"", "English", false},
		{"Sci-fi", "", false},
		{"   ", "English", false},
		{"Sci-fi", "\t", false},
	}
	for _, tt := range tests {
		p := Preferences{Genre: tt.genre, Language: tt.language}
		if got := p.Complete(); got != tt.want {
			t.Errorf("Complete(%q, %q) = %v, want %v", tt.genre, tt.language, got, tt.want)
		}
	}
}

func TestPreferences_Validate(t *testing.T) {
	ok := Preferences{Region: RegionJapanese, Paragraphs: 1}
	if err := ok.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	for _, n := range []int{0, 6, -1} {
		p := Preferences{Region: RegionNoPreference, Paragraphs: n}
		if err := p.Validate(); !errors.Is(err, ErrParagraphsOutside) {
			t.Errorf("paragraphs=%d: expected ErrParagraphsOutside, got %v", n, err)
		}
	}

	bad := Preferences{Region: "Atlantis", Paragraphs: 2}
	if err := bad.Validate(); !errors.Is(err, ErrUnknownRegion) {
		t.Errorf("expected ErrUnknownRegion, got %v", err)
	}
}
