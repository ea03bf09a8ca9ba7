package localsearch

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultCategory is used when the provider sends no usable category.
const DefaultCategory = "Other"

var tagPattern = regexp.MustCompile(`</?[^>]+>`)

// StripTags removes the HTML highlight markup the provider embeds in titles.
func StripTags(s string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(s, ""))
}

// ParseCategory splits a provider category path ("Restaurants>Korean>Stew")
// into a main and optional sub category.
func ParseCategory(category string) (main string, sub *string) {
	trimmed := strings.TrimSpace(category)
	if trimmed == "" {
		return DefaultCategory, nil
	}

	parts := strings.Split(trimmed, ">")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	main = parts[0]
	if main == "" {
		main = DefaultCategory
	}
	if len(parts) > 1 && parts[1] != "" {
		sub = &parts[1]
	}
	return main, sub
}

// ParseCoordinate converts the provider's fixed-point coordinate string
// (degrees scaled by 1e7) to decimal degrees. Unparseable input yields 0.
func ParseCoordinate(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v / 1e7
}

// BestAddress prefers the road address when the provider supplies one.
func BestAddress(item Item) string {
	if addr := strings.TrimSpace(item.RoadAddress); addr != "" {
		return addr
	}
	return strings.TrimSpace(item.Address)
}
