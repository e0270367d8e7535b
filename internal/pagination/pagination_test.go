package pagination

import (
	"net/url"
	"testing"
)

func TestFromQuery_Defaults(t *testing.T) {
	p := FromQuery(url.Values{})

	if p.Page != 0 {
		t.Fatalf("Page = %d, want 0", p.Page)
	}
	if p.Limit != DefaultLimit {
		t.Fatalf("Limit = %d, want %d", p.Limit, DefaultLimit)
	}
	if p.SortOrder != "desc" {
		t.Fatalf("SortOrder = %q, want desc", p.SortOrder)
	}
}

func TestFromQuery_InvalidValuesFallBack(t *testing.T) {
	q := url.Values{
		"page":      {"abc"},
		"limit":     {"-3"},
		"sortOrder": {"sideways"},
	}
	p := FromQuery(q)

	if p.Page != 0 || p.Limit != DefaultLimit || p.SortOrder != "desc" {
		t.Fatalf("invalid inputs must fall back to defaults, got %+v", p)
	}
}

func TestFromQuery_ParsesAndClamps(t *testing.T) {
	q := url.Values{
		"page":      {"3"},
		"limit":     {"500"},
		"search":    {"  luna  "},
		"category":  {"dog"},
		"sortBy":    {"petName"},
		"sortOrder": {"ASC"},
	}
	p := FromQuery(q)

	if p.Page != 3 {
		t.Fatalf("Page = %d", p.Page)
	}
	if p.Limit != MaxLimit {
		t.Fatalf("Limit = %d, want clamp at %d", p.Limit, MaxLimit)
	}
	if p.Search != "luna" || p.Category != "dog" || p.SortBy != "petName" {
		t.Fatalf("filters = %+v", p)
	}
	if p.SortOrder != "asc" {
		t.Fatalf("SortOrder = %q, want asc", p.SortOrder)
	}
}

func TestParams_Offset(t *testing.T) {
	p := Params{Page: 2, Limit: 9}
	if got := p.Offset(); got != 18 {
		t.Fatalf("Offset = %d, want 18", got)
	}
}

func TestNewResult_TotalPages(t *testing.T) {
	cases := []struct {
		total, limit, want int
	}{
		{0, 9, 0},
		{1, 9, 1},
		{9, 9, 1},
		{10, 9, 2},
		{25, 9, 3},
	}
	for _, tc := range cases {
		r := NewResult([]string{}, 0, tc.limit, tc.total)
		if r.TotalPages != tc.want {
			t.Fatalf("total %d limit %d: TotalPages = %d, want %d", tc.total, tc.limit, r.TotalPages, tc.want)
		}
	}
}

func TestNewResult_NilItemsBecomeEmptySlice(t *testing.T) {
	r := NewResult[string](nil, 0, 9, 0)
	if r.Items == nil {
		t.Fatal("Items must serialize as [] instead of null")
	}
}
