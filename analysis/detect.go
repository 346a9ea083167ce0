package analysis

import "strings"

// shoppingKeywords are the URL fragments the browser extension watches for.
// First match wins.
var shoppingKeywords = []string{
	"checkout",
	"cart",
	"basket",
	"payment",
	"order",
	"purchase",
	"buy",
	"shop",
}

// DetectShopping reports whether a URL looks like a shopping/checkout page
// and which keyword matched. Stateless; the extension owns its own
// already-prompted flag per page.
func DetectShopping(rawURL string) (bool, string) {
	lowered := strings.ToLower(rawURL)
	for _, keyword := range shoppingKeywords {
		if strings.Contains(lowered, keyword) {
			return true, keyword
		}
	}
	return false, ""
}
