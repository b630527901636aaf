package slug

import (
	"context"
	"errors"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Wydarzenie Łąka", "wydarzenie-laka"},
		{"Koło Naukowe Informatyków", "kolo-naukowe-informatykow"},
		{"  Trimmed  Spaces  ", "trimmed-spaces"},
		{"Special!@#$Chars", "specialchars"},
		{"multiple---hyphens", "multiple-hyphens"},
		{"under_score_text", "under-score-text"},
		{"--leading-and-trailing--", "leading-and-trailing"},
		{"UPPER Case", "upper-case"},
		{"Żółć", "zolc"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestUniqueReturnsBaseWhenFree(t *testing.T) {
	exists := func(ctx context.Context, slug string, excludeID int64) (bool, error) {
		return false, nil
	}

	got, err := Unique(context.Background(), "spring-meetup", 0, exists)
	if err != nil {
		t.Fatalf("Unique returned error: %v", err)
	}
	if got != "spring-meetup" {
		t.Errorf("Unique = %q, want %q", got, "spring-meetup")
	}
}

func TestUniqueAppendsNumericSuffix(t *testing.T) {
	taken := map[string]bool{
		"event":   true,
		"event-1": true,
	}
	exists := func(ctx context.Context, slug string, excludeID int64) (bool, error) {
		return taken[slug], nil
	}

	got, err := Unique(context.Background(), "event", 0, exists)
	if err != nil {
		t.Fatalf("Unique returned error: %v", err)
	}
	if got != "event-2" {
		t.Errorf("Unique = %q, want %q", got, "event-2")
	}
}

func TestUniquePropagatesExistsError(t *testing.T) {
	wantErr := errors.New("db down")
	exists := func(ctx context.Context, slug string, excludeID int64) (bool, error) {
		return false, wantErr
	}

	if _, err := Unique(context.Background(), "event", 0, exists); !errors.Is(err, wantErr) {
		t.Errorf("Unique error = %v, want wrapped %v", err, wantErr)
	}
}

func TestUniquePassesExcludeID(t *testing.T) {
	var gotExcludeID int64
	exists := func(ctx context.Context, slug string, excludeID int64) (bool, error) {
		gotExcludeID = excludeID
		return false, nil
	}

	if _, err := Unique(context.Background(), "event", 42, exists); err != nil {
		t.Fatalf("Unique returned error: %v", err)
	}
	if gotExcludeID != 42 {
		t.Errorf("excludeID = %d, want 42", gotExcludeID)
	}
}
