package relnotes

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// Style selects the output markup of Publish.
type Style int

const (
	// StyleRST keeps ReStructuredText, resolving only the issue, pull and
	// user roles into explicit hyperlinks.
	StyleRST Style = iota
	// StyleMD rewrites titles, hyperlinks and roles as Markdown.
	StyleMD
)

// String returns the conventional short name of the style.
func (s Style) String() string {
	switch s {
	case StyleRST:
		return "rst"
	case StyleMD:
		return "md"
	default:
		return fmt.Sprintf("style(%d)", int(s))
	}
}

var (
	// ErrHistoryNotFound reports a missing history file.
	ErrHistoryNotFound = errors.New("relnotes: history file not found")
	// ErrStyle reports an output style this package cannot render.
	ErrStyle = errors.New("relnotes: unknown style")
	// ErrOptionViolation reports an invalid option value.
	ErrOptionViolation = errors.New("relnotes: invalid option")
)

// DefaultHistory is the history file read when no override is given,
// resolved against the process working directory.
const DefaultHistory = "HISTORY.rst"

// DefaultRepoURL is the forge project the issue and pull roles link to.
const DefaultRepoURL = "https://github.com/Youssef-Bakr/xscen"

// Options configures Publish. Zero-value fields fall back to the
// defaults; build from DefaultOptions via the With* functions.
type Options struct {
	// History is the path of the ReStructuredText history file.
	History string
	// Style is the output markup, StyleRST by default.
	Style Style
	// RepoURL is the project the issue and pull roles link to. User roles
	// link to the same forge host.
	RepoURL string
	// Writer, when set, also receives the formatted notes.
	Writer io.Writer

	userBase string
	err      error
}

// Option mutates Options. Invalid values are deferred and surface when
// Publish runs.
type Option func(*Options)

// DefaultOptions returns the baseline configuration: HISTORY.rst at the
// working directory, ReStructuredText output, the project's own forge URL,
// no writer.
func DefaultOptions() Options {
	return Options{History: DefaultHistory, Style: StyleRST, RepoURL: DefaultRepoURL}
}

// WithHistory sets the history file path.
func WithHistory(path string) Option {
	return func(o *Options) {
		if path == "" {
			o.err = fmt.Errorf("%w: empty history path", ErrOptionViolation)
			return
		}
		o.History = path
	}
}

// WithStyle sets the output markup.
func WithStyle(s Style) Option {
	return func(o *Options) { o.Style = s }
}

// WithRepoURL sets the forge project the issue and pull roles link to.
func WithRepoURL(repo string) Option {
	return func(o *Options) { o.RepoURL = strings.TrimRight(repo, "/") }
}

// WithWriter streams the formatted notes to w in addition to returning
// them; nil disables streaming.
func WithWriter(w io.Writer) Option {
	return func(o *Options) { o.Writer = w }
}

// apply folds opts over the defaults, surfaces deferred violations and
// derives the forge root that user roles link to.
func apply(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.err != nil {
		return o, o.err
	}
	if o.Style != StyleRST && o.Style != StyleMD {
		return o, fmt.Errorf("%w: %v", ErrStyle, o.Style)
	}
	u, err := url.Parse(o.RepoURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return o, fmt.Errorf("%w: repository URL %q", ErrOptionViolation, o.RepoURL)
	}
	o.userBase = u.Scheme + "://" + u.Host
	return o, nil
}
