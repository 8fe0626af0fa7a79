// Package export renders chart images to disk in bulk.
//
// A batch is a list of jobs, one chart per site selection and format.
// Jobs run concurrently up to a limit; a failed job is recorded in its
// result and does not stop the others.
package export
