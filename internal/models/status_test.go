package models

import "testing"

func TestPostStatusCanAdvanceTo(t *testing.T) {
	cases := []struct {
		from, to PostStatus
		want     bool
	}{
		{PostStatusOpen, PostStatusMatched, true},
		{PostStatusMatched, PostStatusCompleted, true},
		{PostStatusOpen, PostStatusCompleted, false},
		{PostStatusMatched, PostStatusOpen, false},
		{PostStatusCompleted, PostStatusOpen, false},
		{PostStatusCompleted, PostStatusMatched, false},
		{PostStatusCompleted, PostStatusCompleted, false},
		{PostStatusOpen, PostStatusOpen, false},
	}
	for _, c := range cases {
		if got := c.from.CanAdvanceTo(c.to); got != c.want {
			t.Errorf("%s -> %s: got %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestMatchStatusCanAdvanceTo(t *testing.T) {
	if !MatchStatusPending.CanAdvanceTo(MatchStatusAccepted) {
		t.Error("pending -> accepted should be allowed")
	}
	if MatchStatusAccepted.CanAdvanceTo(MatchStatusPending) {
		t.Error("accepted -> pending should be rejected")
	}
	if MatchStatusAccepted.CanAdvanceTo(MatchStatusAccepted) {
		t.Error("accepted is terminal")
	}
}

func TestPostModeValid(t *testing.T) {
	for _, m := range []PostMode{ModeTasukete, ModeAsobo, ModeOshiete} {
		if !m.Valid() {
			t.Errorf("%s should be valid", m)
		}
	}
	if PostMode("party").Valid() {
		t.Error("unknown mode should be invalid")
	}
}

func TestClampTrustScore(t *testing.T) {
	cases := []struct {
		current, rating, want int
	}{
		{100, 5, 150},
		{100, 1, 110},
		{995, 5, 1000}, // clamped, not 1045
		{1000, 5, 1000},
		{960, 4, 1000},
		{950, 5, 1000},
	}
	for _, c := range cases {
		if got := ClampTrustScore(c.current, c.rating); got != c.want {
			t.Errorf("ClampTrustScore(%d, %d) = %d, want %d", c.current, c.rating, got, c.want)
		}
	}
}
