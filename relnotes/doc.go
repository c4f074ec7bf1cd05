// Package relnotes formats the project's release history for publication.
//
// The history lives in HISTORY.rst as ReStructuredText with the Sphinx
// :issue:, :pull: and :user: roles. Publish resolves those roles into
// explicit hyperlinks against the project forge and, when asked for
// Markdown, also rewrites the section titles and embedded hyperlinks, so
// the same file feeds both the rendered documentation and release pages.
//
// Errors
//
//   - ErrHistoryNotFound  the history file does not exist.
//   - ErrStyle            a style this package cannot render.
//   - ErrOptionViolation  an invalid option value.
package relnotes
