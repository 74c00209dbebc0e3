// Package session binds the single signed-in account to the journal.
//
// A Binder holds the current account explicitly and passes its id to every
// journal call. A FilmEditor is the live view over one film: every rating or
// watch-state change is persisted at once, comment edits are saved after a
// quiet period and flushed when the editor is closed.
package session
