package domain

import (
	"fmt"
	"testing"
)

func TestUserMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrNetworkUnavailable, "Cannot connect to server. Please check if the backend is running."},
		{ErrUnauthorized, "Unauthorized. Please login again."},
		{ErrPayloadTooLarge, "File is too large. Maximum size is 50MB."},
		{ErrNoFileSelected, "Please select a file first."},
		{fmt.Errorf("upload: %w", ErrTimeout), "The request timed out. Please try again."},
		{&ValidationError{Message: "email is required"}, "email is required"},
		{&ClientError{Message: "boom"}, "Error: boom"},
		{&ServerError{Status: 500, Message: "Processing failed"}, "Processing failed"},
		{&ServerError{Status: 502}, "Server error: 502"},
	}
	for _, tc := range cases {
		if got := UserMessage(tc.err); got != tc.want {
			t.Errorf("UserMessage(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestSummary_TotalRatingCount(t *testing.T) {
	if got := (DashboardSummary{}).TotalRatingCount(); got != 0 {
		t.Fatalf("expected 0 for absent distribution, got %d", got)
	}
	s := DashboardSummary{RatingDistribution: map[string]int64{"AAA": 2, "BBB": 40, "B": 3}}
	if got := s.TotalRatingCount(); got != 45 {
		t.Fatalf("expected 45, got %d", got)
	}
}

func TestTierForRating(t *testing.T) {
	cases := map[string]RatingTier{
		"AAA":       TierExcellent,
		"AA_MINUS":  TierExcellent,
		"A_PLUS":    TierGood,
		"BBB_MINUS": TierFair,
		"BB":        TierPoor,
		"CCC":       TierPoor,
		"":          TierPoor,
	}
	for rating, want := range cases {
		if got := TierForRating(rating); got != want {
			t.Errorf("TierForRating(%q) = %s, want %s", rating, got, want)
		}
	}
}
