package domain

import "go.trai.ch/zerr"

var (
	// ErrProviderNotRegistered is returned when an update is requested for a provider
	// id the hash cache was not constructed with.
	ErrProviderNotRegistered = zerr.New("provider not registered with hash cache")

	// ErrDuplicateProvider is returned when two providers share the same id.
	ErrDuplicateProvider = zerr.New("duplicate provider id")

	// ErrUpdaterClosed is raised when a provider writes through an updater that has
	// already been finalized.
	ErrUpdaterClosed = zerr.New("cannot write to cache as it has already been closed")

	// ErrBuilderFinalized is raised when a cache builder is used after Build.
	ErrBuilderFinalized = zerr.New("provider cache builder already finalized")

	// ErrProviderFailed is returned when a provider run does not complete successfully.
	ErrProviderFailed = zerr.New("provider failed")

	// ErrProviderNotFound is returned when a requested provider id is not configured.
	ErrProviderNotFound = zerr.New("provider not found")

	// ErrOutputOutsideRoot is returned when a provider writes outside the output root.
	ErrOutputOutsideRoot = zerr.New("output path is outside output root")

	// ErrOutputWriteFailed is returned when an output file cannot be written.
	ErrOutputWriteFailed = zerr.New("failed to write output file")

	// ErrOutputDirCreateFailed is returned when the parent directory of an output cannot be created.
	ErrOutputDirCreateFailed = zerr.New("failed to create output directory")

	// ErrOutputStatFailed is returned when the existence of an output cannot be determined.
	ErrOutputStatFailed = zerr.New("failed to stat output file")

	// ErrCacheDirCreateFailed is returned when the cache directory cannot be created.
	ErrCacheDirCreateFailed = zerr.New("failed to create cache directory")

	// ErrCacheReadFailed is returned when a provider cache file cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read provider cache")

	// ErrCacheWriteFailed is returned when a provider cache file cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write provider cache")

	// ErrCacheHeaderMissing is returned when a cache file does not start with the header marker.
	ErrCacheHeaderMissing = zerr.New("missing cache file header")

	// ErrCacheLineMalformed is returned when a cache entry line cannot be parsed.
	ErrCacheLineMalformed = zerr.New("malformed cache file line")

	// ErrInvalidHash is returned when a hex string is not a valid content hash.
	ErrInvalidHash = zerr.New("invalid content hash")

	// ErrPurgeWalkFailed is returned when the output root cannot be walked during purge.
	ErrPurgeWalkFailed = zerr.New("failed to walk output root")

	// ErrManifestWriteFailed is returned when the run manifest cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write run manifest")

	// ErrStableJSONFailed is returned when a value cannot be rendered as stable JSON.
	ErrStableJSONFailed = zerr.New("failed to encode stable json")

	// ErrInvalidResourceLocation is returned when a resource id is not of the form namespace:path.
	ErrInvalidResourceLocation = zerr.New("invalid resource location")

	// ErrInvalidPackTarget is returned when an output target is neither data nor assets.
	ErrInvalidPackTarget = zerr.New("invalid pack target, expected 'data' or 'assets'")

	// ErrConfigNotFound is returned when no configuration file can be found.
	ErrConfigNotFound = zerr.New("could not find datagen.yaml")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrMissingVersion is returned when the config does not declare a version tag.
	ErrMissingVersion = zerr.New("missing version tag")

	// ErrMissingProviderID is returned when a provider entry has no id.
	ErrMissingProviderID = zerr.New("missing provider id")

	// ErrInvalidOutput is returned when an output declares neither or both of resource and path.
	ErrInvalidOutput = zerr.New("output must declare exactly one of 'resource' or 'path'")

	// ErrMissingKind is returned when a resource output does not declare its kind.
	ErrMissingKind = zerr.New("resource output must declare a kind")

	// ErrInvalidOutputPath is returned when an output path is absolute or escapes the output root.
	ErrInvalidOutputPath = zerr.New("output path must be relative and stay inside the output root")

	// ErrDuplicateOutput is returned when a provider declares the same output path twice.
	ErrDuplicateOutput = zerr.New("duplicate output path")

	// ErrInvalidJobs is returned when the configured job limit is negative.
	ErrInvalidJobs = zerr.New("jobs must not be negative")

	// ErrUnsafeRoot is returned when the output root would contain the config file.
	ErrUnsafeRoot = zerr.New("output root must not contain the configuration file")

	// ErrReservedOutputPath is returned when an output targets the run manifest or the cache directory.
	ErrReservedOutputPath = zerr.New("output path is reserved for the run manifest and cache directory")

	// ErrCacheDrift is returned by verification when outputs no longer match their record.
	ErrCacheDrift = zerr.New("outputs differ from cache record")

	// ErrWatchFailed is returned when the configuration file cannot be watched.
	ErrWatchFailed = zerr.New("failed to watch configuration")

	// ErrFailedToGetRoot is returned when the output root cannot be made absolute.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path of output root")

	// ErrCleanFailed is returned when removing generated state fails.
	ErrCleanFailed = zerr.New("failed to clean")
)
