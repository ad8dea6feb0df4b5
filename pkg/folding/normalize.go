package folding

import (
	"fmt"
	"strings"

	"github.com/kerem-kaynak/german-analysis/pkg/analysis"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Form names a Unicode normalization form.
type Form string

const (
	NFC    Form = "nfc"
	NFD    Form = "nfd"
	NFKC   Form = "nfkc"
	NFKD   Form = "nfkd"
	NFKCCF Form = "nfkc_cf"
)

// ParseForm validates a normalization form name.
func ParseForm(name string) (Form, error) {
	switch f := Form(strings.ToLower(name)); f {
	case NFC, NFD, NFKC, NFKD, NFKCCF:
		return f, nil
	case "":
		return NFKCCF, nil
	default:
		return "", fmt.Errorf("unknown normalization form %q", name)
	}
}

// Normalize applies form to s. NFKC_CF is NFKC followed by case folding and
// a second NFKC pass.
func Normalize(s string, form Form) string {
	switch form {
	case NFC:
		return norm.NFC.String(s)
	case NFD:
		return norm.NFD.String(s)
	case NFKC:
		return norm.NFKC.String(s)
	case NFKD:
		return norm.NFKD.String(s)
	case NFKCCF:
		return norm.NFKC.String(cases.Fold().String(norm.NFKC.String(s)))
	default:
		return s
	}
}

// NewNormalizeFilter normalizes every term to form. Keyword tokens pass
// through.
func NewNormalizeFilter(in analysis.TokenStream, form Form) analysis.TokenStream {
	f := analysis.NewTermFilter(in, func(s string) string {
		return Normalize(s, form)
	})
	f.SkipKeywords = true
	return f
}
