package naming

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold decomposes accented characters and drops everything that has no
// ASCII representation, mirroring NFKD + ascii-ignore folding.
var asciiFold = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.In(unicode.Mn)),
	runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
)

func foldToASCII(value string) string {
	folded, _, err := transform.String(asciiFold, value)
	if err != nil {
		// Fall back to dropping non-ASCII bytes directly.
		out := make([]byte, 0, len(value))
		for i := 0; i < len(value); i++ {
			if value[i] <= unicode.MaxASCII {
				out = append(out, value[i])
			}
		}
		return string(out)
	}
	return folded
}
