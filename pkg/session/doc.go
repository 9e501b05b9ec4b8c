// Package session provides a minimal unit of work over database/sql.
//
// Refreshing a materialized view has to see writes made earlier in the same
// unit of work, so view.Refresh flushes the session before running the
// refresh statement. Session satisfies view.Session.
package session
