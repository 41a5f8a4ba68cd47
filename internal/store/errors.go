package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same email already exists in the database.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrHashAlreadyExists is returned when an INSERT into the images table
	// violates the unique constraint on file_hash: another request persisted
	// the same content first. Callers must treat this as a dedup hit and
	// re-fetch the winning record, never as a fatal error.
	ErrHashAlreadyExists = errors.New("image with this content hash already exists")

	// ErrImageNotFound is returned when a query targets an image record that
	// does not exist in the database.
	ErrImageNotFound = errors.New("image was not found")

	// ErrClassificationNotFound is returned when a query, update, or delete
	// targets a classification record that does not exist.
	ErrClassificationNotFound = errors.New("classification was not found")

	// ErrNothingToUpdate is returned when a partial update request carries no
	// fields to change.
	ErrNothingToUpdate = errors.New("no fields to update")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
