package worddelimiter

import (
	"fmt"
	"strings"
)

// Flags selects what the splitter emits.
type Flags uint32

const (
	// GenerateWordParts emits alphabetic parts: "PowerShot" => "Power" "Shot".
	GenerateWordParts Flags = 1 << iota
	// GenerateNumberParts emits numeric parts: "500-42" => "500" "42".
	GenerateNumberParts
	// CatenateWords joins runs of alphabetic parts: "wi-fi" => "wifi".
	CatenateWords
	// CatenateNumbers joins runs of numeric parts: "500-42" => "50042".
	CatenateNumbers
	// CatenateAll joins all parts: "wi-fi-4000" => "wifi4000".
	CatenateAll
	// PreserveOriginal also emits the unsplit token first.
	PreserveOriginal
	// SplitOnCaseChange breaks on lower to upper transitions.
	SplitOnCaseChange
	// SplitOnNumerics breaks on letter/digit transitions.
	SplitOnNumerics
	// StemEnglishPossessive drops a trailing "'s".
	StemEnglishPossessive
	// AllPartsAtSamePosition stacks every part on the first one's position.
	AllPartsAtSamePosition
)

// DefaultFlags generates word and number parts, splits on case changes and
// digits and removes possessives.
const DefaultFlags = GenerateWordParts | GenerateNumberParts | SplitOnCaseChange |
	SplitOnNumerics | StemEnglishPossessive

var flagNames = []struct {
	name string
	flag Flags
}{
	{"generate_word_parts", GenerateWordParts},
	{"generate_number_parts", GenerateNumberParts},
	{"catenate_words", CatenateWords},
	{"catenate_numbers", CatenateNumbers},
	{"catenate_all", CatenateAll},
	{"preserve_original", PreserveOriginal},
	{"split_on_case_change", SplitOnCaseChange},
	{"split_on_numerics", SplitOnNumerics},
	{"stem_english_possessive", StemEnglishPossessive},
	{"all_parts_at_same_position", AllPartsAtSamePosition},
}

// Has reports whether all of flag is set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

func (f Flags) String() string {
	var names []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// ParseFlags combines flags given by their snake_case names.
func ParseFlags(names []string) (Flags, error) {
	var flags Flags
	for _, name := range names {
		flag, ok := lookupFlag(strings.ToLower(strings.TrimSpace(name)))
		if !ok {
			return 0, fmt.Errorf("unknown word delimiter flag %q", name)
		}
		flags |= flag
	}
	return flags, nil
}

func lookupFlag(name string) (Flags, bool) {
	for _, fn := range flagNames {
		if fn.name == name {
			return fn.flag, true
		}
	}
	return 0, false
}
