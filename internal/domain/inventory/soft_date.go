package inventory

import (
	"strings"
	"time"
)

// ParseSoftDate interpreta "DD/MM/YYYY" o "DD/MM" (año actual). Cualquier otro formato es nil.
func ParseSoftDate(text string) *time.Time {
	return ParseSoftDateAt(text, time.Now())
}

// ParseSoftDateAt igual que ParseSoftDate pero con el "ahora" explícito (año por defecto).
// La fecha resultante es medianoche UTC.
func ParseSoftDateAt(text string, now time.Time) *time.Time {
	t := strings.TrimSpace(text)
	if t == "" {
		return nil
	}
	if d, err := time.Parse("2/1/2006", t); err == nil {
		out := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		return &out
	}
	d, err := time.Parse("2/1", t)
	if err != nil {
		return nil
	}
	out := time.Date(now.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	// 29/02 en año no bisiesto se desplazaría a marzo.
	if out.Month() != d.Month() || out.Day() != d.Day() {
		return nil
	}
	return &out
}
