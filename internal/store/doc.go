// Package store provides the Record Store: the immutable, in-memory set of
// launch records the dashboard is built on.
//
// A Store is loaded once at startup from either a CSV file or a SQLite
// database holding the same columns. The source type is detected from the
// file content, not its extension. After loading, a Store is never mutated
// and may be shared by any number of goroutines without locking.
package store
