package analysis

import "testing"

func TestDetectShopping(t *testing.T) {
	tests := []struct {
		url     string
		want    bool
		keyword string
	}{
		{"https://store.example.com/checkout/step-1", true, "checkout"},
		{"https://example.com/CART/view", true, "cart"},
		{"https://example.com/blog/why-i-stopped-shopping", true, "shop"},
		{"https://news.example.com/articles/today", false, ""},
		{"", false, ""},
	}

	for _, tc := range tests {
		got, keyword := DetectShopping(tc.url)
		if got != tc.want || keyword != tc.keyword {
			t.Fatalf("DetectShopping(%q) = (%v, %q), want (%v, %q)", tc.url, got, keyword, tc.want, tc.keyword)
		}
	}
}
