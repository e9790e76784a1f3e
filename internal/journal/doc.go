// Package journal records session activity in SQLite for diagnostics.
//
// A journal is session-scoped: the default :memory: database lives and dies
// with the process, so nothing persists past the editing session. Passing a
// file path is an explicit operator export used by the report command.
//
// The journal sits strictly on the diagnostics path. Sessions run fine
// without one, and a journal write failure never fails the session
// operation that triggered it.
package journal
