package relnotes

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strings"
)

// Patterns of the source history. The replacement side depends on options
// and is assembled per call.
var (
	issueRole = regexp.MustCompile(":issue:`([0-9]+)`")
	pullRole  = regexp.MustCompile(":pull:`([0-9]+)`")
	userRole  = regexp.MustCompile(":user:`([a-zA-Z0-9_.-]+)`")

	overTitle  = regexp.MustCompile(`(?m)^=+\n(.+)\n=+$`)
	dashTitle  = regexp.MustCompile(`(?m)^(.+)\n-+$`)
	caretTitle = regexp.MustCompile(`(?m)^(.+)\n\^+$`)
	rstLink    = regexp.MustCompile("`([\\w\\s]+)\\s<([^>]+)>`_")
)

// Publish renders the project's release history. The history file is read
// as ReStructuredText; the issue, pull and user roles become explicit
// hyperlinks, and under StyleMD the section titles and embedded hyperlinks
// are rewritten as Markdown on top of that. The result is returned and,
// when a writer is configured, also written to it.
func Publish(opts ...Option) (string, error) {
	o, err := apply(opts)
	if err != nil {
		return "", err
	}
	raw, err := os.ReadFile(o.History)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s: %w", ErrHistoryNotFound, o.History, err)
	}
	if err != nil {
		return "", fmt.Errorf("relnotes: reading %s: %w", o.History, err)
	}
	notes := resolveRoles(string(raw), o)
	if o.Style == StyleMD {
		notes = markdownTitles(notes)
		notes = markdownLinks(notes)
	}
	if o.Writer != nil {
		if _, err := io.WriteString(o.Writer, notes); err != nil {
			return "", fmt.Errorf("relnotes: writing notes: %w", err)
		}
	}
	return notes, nil
}

// resolveRoles expands the :issue:, :pull: and :user: roles into
// hyperlinks of the requested style.
func resolveRoles(history string, o Options) string {
	issue := o.RepoURL + "/issues/${1}"
	pull := o.RepoURL + "/pull/${1}"
	user := o.userBase + "/${1}"
	if o.Style == StyleMD {
		history = issueRole.ReplaceAllString(history, "[GH/${1}]("+issue+")")
		history = pullRole.ReplaceAllString(history, "[PR/${1}]("+pull+")")
		return userRole.ReplaceAllString(history, "[@${1}]("+user+")")
	}
	history = issueRole.ReplaceAllString(history, "`GH/${1} <"+issue+">`_")
	history = pullRole.ReplaceAllString(history, "`PR/${1} <"+pull+">`_")
	return userRole.ReplaceAllString(history, "`@${1} <"+user+">`_")
}

// markdownTitles rewrites the section titles: the overlined document title
// becomes an H1, dash-underlined sections H2, caret-underlined
// subsections H3.
func markdownTitles(history string) string {
	history = overTitle.ReplaceAllString(history, "# ${1}")
	history = dashTitle.ReplaceAllString(history, "## ${1}")
	return caretTitle.ReplaceAllString(history, "### ${1}")
}

// markdownLinks rewrites `text <url>`_ hyperlinks as [text](url).
func markdownLinks(history string) string {
	return rstLink.ReplaceAllStringFunc(history, func(m string) string {
		sub := rstLink.FindStringSubmatch(m)
		return "[" + strings.TrimSpace(sub[1]) + "](" + sub[2] + ")"
	})
}
