package models

// HourlySeries carries one open-meteo hourly block: a shared ordered
// timestamp axis plus per-variable value columns of the same length.
// A nil value means the source reported null for that hour.
type HourlySeries struct {
	Times  []string
	Values map[string][]*float64
}

// Column returns the series for a variable, or nil when the variable was
// not part of the response.
func (s HourlySeries) Column(variable string) []*float64 {
	return s.Values[variable]
}

// At returns the value of a variable at hour index i, nil-safe on short or
// missing columns.
func (s HourlySeries) At(variable string, i int) *float64 {
	col := s.Values[variable]
	if i < 0 || i >= len(col) {
		return nil
	}
	return col[i]
}

// WindProfileSample holds consensus wind speeds (m/s) at the three report
// altitudes for a single hour. Samples exist only for hours where at least
// one model delivered all three pressure levels.
type WindProfileSample struct {
	Wind1500MS float64
	Wind2500MS float64
	Wind3500MS float64
}
