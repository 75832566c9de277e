package naming

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Date patterns already embedded in filenames, most specific first. The
// YYYYMM pattern must not eat the first six digits of a full YYYYMMDD, so
// it requires a non-digit (or end of string) after the month.
var (
	dateFullPattern   = regexp.MustCompile(`(20\d{2})[_\-]?([01]\d)[_\-]?([0-3]\d)`)
	dateUSPattern     = regexp.MustCompile(`([01]\d)[_\-]?([0-3]\d)[_\-]?(20\d{2})`)
	dateYearMonthOnly = regexp.MustCompile(`(20\d{2})[_\-]?([01]\d)(\D|$)`)

	versionPattern = regexp.MustCompile(`(?i)[_\-\s]?v(?:er(?:sion)?)?[_\-\s.]?(\d+(?:\.\d+)?)`)
)

// extractDate finds a date already embedded in the name and removes it,
// returning the date normalized to YYYYMMDD (or YYYYMM) plus the remainder.
func extractDate(name string) (string, string) {
	if m := dateFullPattern.FindStringSubmatchIndex(name); m != nil {
		date := name[m[2]:m[3]] + name[m[4]:m[5]] + name[m[6]:m[7]]
		return date, name[:m[0]] + name[m[1]:]
	}
	if m := dateUSPattern.FindStringSubmatchIndex(name); m != nil {
		date := name[m[6]:m[7]] + name[m[2]:m[3]] + name[m[4]:m[5]]
		return date, name[:m[0]] + name[m[1]:]
	}
	if m := dateYearMonthOnly.FindStringSubmatchIndex(name); m != nil {
		date := name[m[2]:m[3]] + name[m[4]:m[5]]
		// Group 3 is the boundary character, not part of the date.
		return date, name[:m[0]] + name[m[6]:]
	}
	return "", name
}

// extractVersion finds a version token in the name and removes it, returning
// the version normalized to vNN or vNN.NN form plus the remainder.
func extractVersion(name string) (string, string) {
	m := versionPattern.FindStringSubmatchIndex(name)
	if m == nil {
		return "", name
	}
	number := name[m[2]:m[3]]
	var version string
	if strings.Contains(number, ".") {
		version = "v" + number
	} else {
		n, err := strconv.Atoi(number)
		if err != nil {
			return "", name
		}
		version = fmt.Sprintf("v%02d", n)
	}
	return version, name[:m[0]] + name[m[1]:]
}
