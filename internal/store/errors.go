package store

import "errors"

// Sentinel errors returned by stores to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrStorageUnavailable is returned when a store call fails for any
	// reason other than a missing record or a uniqueness conflict, including
	// deadline expiry and cancellation.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrConflict is returned when an insert violates the uniqueness of the
	// short code.
	ErrConflict = errors.New("record already exists")

	// ErrNotFound is returned when a query or update targets a short link
	// that does not exist (or does not belong to the given owner).
	ErrNotFound = errors.New("record not found")

	// ErrBlobNotFound is returned by BlobStore.Get for an unknown locator.
	ErrBlobNotFound = errors.New("blob not found")
)

// Low-level database operation errors. They are wrapped together with
// [ErrStorageUnavailable] so callers only need to match the latter.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan short link row")

	// ErrScanningRows is returned when scanning during multi-row iteration
	// fails.
	ErrScanningRows = errors.New("failed to scan short link rows")
)
