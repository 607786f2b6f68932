package correlations

// SuddenExpansion is the Borda-Carnot loss coefficient for an area increase from
// a1 to a2, referred to the upstream velocity.
func SuddenExpansion(a1, a2 float64) float64 {
	r := 1 - a1/a2
	return r * r
}

// SuddenContraction is the turbulent loss coefficient for an area decrease from
// a1 to a2, referred to the downstream velocity.
func SuddenContraction(a1, a2 float64) float64 {
	return 0.5 * (1 - a2/a1)
}
