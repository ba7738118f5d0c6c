package inventory

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upperES = cases.Upper(language.Spanish)

// NormalizeReferencia recorta espacios y pasa a mayúsculas con reglas del español.
func NormalizeReferencia(ref string) string {
	return upperES.String(strings.TrimSpace(ref))
}
