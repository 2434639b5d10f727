package inventory

import "time"

// ListStatus estado de frescura de la vista de stock agrupada (tres niveles).
type ListStatus string

const (
	ListOK     ListStatus = "ok"
	ListWarn   ListStatus = "warn"
	ListDanger ListStatus = "danger"
)

// PantryStatus estado de la vista de despensa personal (cuatro niveles).
// No es intercambiable con ListStatus: los umbrales difieren.
type PantryStatus string

const (
	PantryOK      PantryStatus = "ok"
	PantryAlert   PantryStatus = "alert"
	PantryDanger  PantryStatus = "danger"
	PantryExpired PantryStatus = "expired"
)

// DaysUntil días de calendario entre today y expiry (negativo si ya venció).
func DaysUntil(expiry, today time.Time) int {
	e := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(t).Hours() / 24)
}

// StockListStatus: sin fecha ok; vencido o <= 2 días danger; <= 7 warn; si no ok.
func StockListStatus(expiry *time.Time, today time.Time) ListStatus {
	if expiry == nil {
		return ListOK
	}
	days := DaysUntil(*expiry, today)
	switch {
	case days < 0:
		return ListDanger
	case days <= 2:
		return ListDanger
	case days <= 7:
		return ListWarn
	}
	return ListOK
}

// Severity orden de urgencia para ordenar (danger primero).
func (s ListStatus) Severity() int {
	switch s {
	case ListDanger:
		return 0
	case ListWarn:
		return 1
	case ListOK:
		return 2
	}
	return 3
}

// PantryItemStatus: sin fecha ok; < 0 expired; <= 2 danger; <= 5 alert; si no ok.
func PantryItemStatus(daysToExpire *int) PantryStatus {
	if daysToExpire == nil {
		return PantryOK
	}
	d := *daysToExpire
	switch {
	case d < 0:
		return PantryExpired
	case d <= 2:
		return PantryDanger
	case d <= 5:
		return PantryAlert
	}
	return PantryOK
}
