package utils

// ExcerptLength is the list-view preview length in runes.
const ExcerptLength = 160

// Excerpt truncates content for list views, appending an ellipsis when
// anything was cut. Truncation counts runes so multi-byte text is never
// split mid-character.
func Excerpt(content string) string {
	runes := []rune(content)

	if len(runes) <= ExcerptLength {
		return content
	}

	return string(runes[:ExcerptLength]) + "…"
}
