package dto

import (
	"strings"
	"time"

	"github.com/romero-panificados/inventario-api/internal/domain"
)

const dateLayout = "2006-01-02"

// ParseDateRange interpreta desde/hasta como fecha (2006-01-02) o RFC3339.
// Una fecha sin hora en hasta incluye el día completo.
func ParseDateRange(desde, hasta string, loc *time.Location) (*time.Time, *time.Time, error) {
	from, err := parseDate(desde, loc, false)
	if err != nil {
		return nil, nil, domain.Invalid("desde", "fecha inválida, use AAAA-MM-DD")
	}
	to, err := parseDate(hasta, loc, true)
	if err != nil {
		return nil, nil, domain.Invalid("hasta", "fecha inválida, use AAAA-MM-DD")
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, domain.Invalid("hasta", "debe ser posterior a desde")
	}
	return from, to, nil
}

func parseDate(s string, loc *time.Location, endOfDay bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		if endOfDay {
			t = t.AddDate(0, 0, 1)
		}
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
