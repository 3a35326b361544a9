package domain

// Drift describes a recorded output whose file no longer matches its record.
type Drift struct {
	Path     string
	Expected Hash
	// Actual is the zero hash when the file is missing.
	Actual  Hash
	Missing bool
}
