package naming

// Rules configures filename normalization. A Rules value is plain data:
// construct it once (usually from config) and pass it explicitly.
//
// The produced shape is descriptor_YYYYMMDD_v01.ext for documents and
// YYYYMMDD_descriptor_v01.ext for media, following the archival naming
// guidance the defaults are drawn from: element separator between subject,
// date, and version; word separator inside an element; ISO dates;
// zero-padded versions; lowercase throughout.
type Rules struct {
	// WordSeparator joins words within an element (annual-report).
	WordSeparator string
	// ElementSeparator joins the subject, date, and version elements.
	ElementSeparator string
	// Lowercase converts the stem and extension to lowercase.
	Lowercase bool
	// StripCharacters are removed from the stem outright, in addition to
	// characters invalid on the target filesystem.
	StripCharacters string
	// MaxStemLength truncates the assembled stem.
	MaxStemLength int
	// CollapseSeparators squeezes runs of the word separator.
	CollapseSeparators bool
	// TrimEdgeSeparators strips leading/trailing separators from the stem.
	TrimEdgeSeparators bool
	// AddDatePrefix falls back to the file's modification date when the
	// name itself carries no date.
	AddDatePrefix bool
}

// DefaultRules returns the archival-practice defaults.
func DefaultRules() Rules {
	return Rules{
		WordSeparator:      "-",
		ElementSeparator:   "_",
		Lowercase:          true,
		StripCharacters:    "!@#$%^&()+={}[]|;',`~",
		MaxStemLength:      50,
		CollapseSeparators: true,
		TrimEdgeSeparators: true,
		AddDatePrefix:      true,
	}
}

// windowsInvalidChars are never allowed in a produced filename.
const windowsInvalidChars = `<>:"/\|?*`

// windowsReservedNames collide with device names on Windows and get a
// disambiguating suffix.
var windowsReservedNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {},
	"COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {},
	"LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}
