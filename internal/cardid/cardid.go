package cardid

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Normalize cleans and concatenates card content so that cosmetic edits
// (case, surrounding whitespace, CRLF line endings) do not change the id.
func Normalize(front, back, tag string) string {
	normalizePart := func(part string) string {
		p := strings.ToLower(part)
		p = strings.TrimSpace(p)
		p = strings.ReplaceAll(p, "\r\n", "\n")
		return p
	}

	// Joined with newlines so adjacent fields cannot run together and
	// collide, e.g. "ab"+"c" vs "a"+"bc".
	return strings.Join([]string{
		normalizePart(front),
		normalizePart(back),
		normalizePart(tag),
	}, "\n")
}

// FromContent derives a stable card id from the card's content. Cards
// imported from markdown sources get content-addressed ids, so re-importing
// the same source never duplicates a card.
func FromContent(front, back, tag string) string {
	sum := sha256.Sum256([]byte(Normalize(front, back, tag)))
	return fmt.Sprintf("md-%x", sum[:8])
}
