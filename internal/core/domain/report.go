package domain

// PurgeReport summarises one reconciliation pass. It is observational only.
type PurgeReport struct {
	// FilesSeen is the number of files found under the output root, cache files excluded.
	FilesSeen int
	// PreviousCount is the number of entries across all records loaded at startup.
	PreviousCount int
	// ReferencedCount is the size of the referenced path set, well-known paths included.
	ReferencedCount int
	// Deleted is the number of stale files removed.
	Deleted int
	// DeleteFailed is the number of stale files that could not be removed.
	DeleteFailed int
	// Written is the number of output files providers physically wrote this run.
	Written int
	// CachesSaved is the number of provider cache files rewritten.
	CachesSaved int
}
