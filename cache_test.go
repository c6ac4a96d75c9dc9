package main

import (
	"testing"
	"time"

	"github.com/mystoredigital/inversion-budget-app/pkg/report"
)

func TestSummaryCacheKeyWindows(t *testing.T) {
	janStart, janEnd := report.MonthWindow(2024, time.January)
	yearStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := yearStart.AddDate(1, 0, 0)

	janKey := summaryCacheKey(1, "totals", janStart, janEnd)
	yearKey := summaryCacheKey(1, "totals", yearStart, yearEnd)
	if janKey == yearKey {
		t.Fatalf("whole-year and January windows share cache key %q", janKey)
	}

	if again := summaryCacheKey(1, "totals", janStart, janEnd); again != janKey {
		t.Fatalf("same window produced different keys: %q vs %q", janKey, again)
	}
	if catKey := summaryCacheKey(1, "categories", janStart, janEnd); catKey == janKey {
		t.Fatalf("kinds share cache key %q", janKey)
	}
	if otherUser := summaryCacheKey(2, "totals", janStart, janEnd); otherUser == janKey {
		t.Fatalf("users share cache key %q", janKey)
	}
}
