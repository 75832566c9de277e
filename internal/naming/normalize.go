package naming

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"curator/internal/category"
)

// cameraPrefixPattern matches camera-generated filename prefixes once the
// stem has been cleaned (lowercased, separators normalized).
var cameraPrefixPattern = regexp.MustCompile(`^(?:dscn|dscf|imag|img|dsc|sam|wp|p)(?:$|[-_])`)

// copySuffixPattern matches duplicate-file decorations like "report copy" or
// "report (copy 2)" once the stem has been cleaned.
var copySuffixPattern = regexp.MustCompile(`(?i)(?:^|[-_])copy(?:[-_]?\d+)?$`)

// Normalize produces the canonical stem+extension for a file. It is a pure
// function of its inputs: normalizing an already-normalized name with the
// same rules and modification time returns it unchanged.
//
// Media files lead with the date (photos sort chronologically); everything
// else leads with the descriptor. A version token, when present, always
// comes last.
func Normalize(name, extension string, rules Rules, modTime time.Time, cat category.Category) string {
	date, remainder := extractDate(name)
	version, remainder := extractVersion(remainder)

	descriptor := cleanStem(remainder, rules)
	if cat.IsMedia() {
		descriptor = stripCameraPrefix(descriptor)
	}

	if date == "" && rules.AddDatePrefix && !modTime.IsZero() {
		date = modTime.UTC().Format("20060102")
	}

	descriptor = truncateDescriptor(descriptor, date, version, rules)

	var parts []string
	if cat.IsMedia() {
		parts = appendNonEmpty(parts, date, descriptor, version)
	} else {
		parts = appendNonEmpty(parts, descriptor, date, version)
	}

	stem := strings.Join(parts, rules.ElementSeparator)
	if stem == "" {
		stem = "unnamed"
	}
	if _, reserved := windowsReservedNames[strings.ToUpper(stem)]; reserved {
		stem += rules.ElementSeparator + "file"
	}

	return stem + normalizeExtension(extension, rules)
}

// NormalizeFilename splits a full filename into stem and extension before
// normalizing.
func NormalizeFilename(filename string, rules Rules, modTime time.Time, cat category.Category) string {
	ext := filepath.Ext(filename)
	return Normalize(strings.TrimSuffix(filename, ext), ext, rules, modTime, cat)
}

// cleanStem reduces the descriptor to lowercase ASCII words joined by the
// word separator. Underscores survive as element separators; spaces, tabs,
// and dots become word separators.
func cleanStem(stem string, rules Rules) string {
	stem = foldToASCII(stem)

	var b strings.Builder
	b.Grow(len(stem))
	for _, r := range stem {
		switch {
		case strings.ContainsRune(windowsInvalidChars, r):
		case strings.ContainsRune(rules.StripCharacters, r):
		case r == ' ' || r == '\t' || r == '.':
			b.WriteString(rules.WordSeparator)
		default:
			b.WriteRune(r)
		}
	}
	stem = b.String()

	if rules.Lowercase {
		stem = strings.ToLower(stem)
	}
	if rules.CollapseSeparators {
		stem = collapseSeparators(stem, rules)
	}
	if rules.TrimEdgeSeparators {
		stem = strings.Trim(stem, rules.WordSeparator+rules.ElementSeparator+"-_")
	}
	for {
		next := copySuffixPattern.ReplaceAllString(stem, "")
		if next == stem {
			return stem
		}
		stem = next
	}
}

// collapseSeparators squeezes any run of separator characters down to its
// first character, so "img__-_001" becomes "img_001".
func collapseSeparators(stem string, rules Rules) string {
	seps := rules.WordSeparator + rules.ElementSeparator + "-_"
	var b strings.Builder
	b.Grow(len(stem))
	inRun := false
	for _, r := range stem {
		if strings.ContainsRune(seps, r) {
			if !inRun {
				b.WriteRune(r)
				inRun = true
			}
			continue
		}
		inRun = false
		b.WriteRune(r)
	}
	return b.String()
}

// stripCameraPrefix removes camera naming prefixes (IMG, DSC, ...) from the
// front of a cleaned stem. Repeats until none remain so the result is stable
// under re-normalization.
func stripCameraPrefix(stem string) string {
	for {
		loc := cameraPrefixPattern.FindStringIndex(stem)
		if loc == nil {
			return stem
		}
		stem = stem[loc[1]:]
	}
}

// truncateDescriptor shortens only the descriptor element so the assembled
// stem fits MaxStemLength. Date and version tokens are never cut.
func truncateDescriptor(descriptor, date, version string, rules Rules) string {
	if rules.MaxStemLength <= 0 || descriptor == "" {
		return descriptor
	}
	budget := rules.MaxStemLength
	for _, fixed := range []string{date, version} {
		if fixed != "" {
			budget -= len(fixed) + len(rules.ElementSeparator)
		}
	}
	if budget <= 0 {
		return ""
	}
	if len(descriptor) > budget {
		descriptor = strings.TrimRight(descriptor[:budget], rules.WordSeparator+rules.ElementSeparator+"-_")
	}
	return descriptor
}

func normalizeExtension(extension string, rules Rules) string {
	if extension == "" {
		return ""
	}
	if !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}
	if rules.Lowercase {
		extension = strings.ToLower(extension)
	}
	return extension
}

func appendNonEmpty(parts []string, values ...string) []string {
	for _, v := range values {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return parts
}
