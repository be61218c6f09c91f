// Package logger implements a logging adapter using log/slog.
package logger

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/spin/internal/ui/output"
	"go.trai.ch/spin/internal/ui/style"
)

type levelStyle struct {
	prefix string
	color  lipgloss.Color
}

var levelStyles = map[slog.Level]levelStyle{
	slog.LevelDebug: {prefix: style.Tilde + " ", color: style.Slate},
	slog.LevelInfo:  {color: style.Slate},
	slog.LevelWarn:  {prefix: style.Warning + " ", color: style.Yellow},
	slog.LevelError: {prefix: style.Cross + " ", color: style.Red},
}

// PrettyHandler renders records as one colored line: a level marker, the
// message, then key=value attributes. Clones made by WithAttrs and WithGroup
// share the writer lock, because the build's stdout and stderr are mirrored
// to the log from separate goroutines.
type PrettyHandler struct {
	out   *termenv.Output
	mu    *sync.Mutex
	level slog.Leveler

	// attrs holds attributes from WithAttrs, already rendered.
	attrs  string
	groups []string
}

// NewPrettyHandler creates a PrettyHandler writing to w (stderr when nil).
// The level is read on every record, so a shared slog.LevelVar can change
// verbosity after construction.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w, output.Interactive),
		mu:    &sync.Mutex{},
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes the record as a single line.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	ls := styleFor(r.Level)
	line := h.out.String(ls.prefix + r.Message).
		Foreground(h.out.Color(string(ls.color))).
		String()

	var attrs strings.Builder
	attrs.WriteString(h.attrs)
	prefix := groupPrefix(h.groups)
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&attrs, prefix, a)
		return true
	})
	if attrs.Len() > 0 {
		line += h.out.String(attrs.String()).Foreground(h.out.Color(string(style.Slate))).String()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.WriteString(line + "\n")
	return err
}

// WithAttrs returns a handler that renders attrs on every record, qualified by
// the groups open at this point.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	var b strings.Builder
	b.WriteString(h.attrs)
	prefix := groupPrefix(h.groups)
	for _, a := range attrs {
		appendAttr(&b, prefix, a)
	}

	clone := *h
	clone.attrs = b.String()
	return &clone
}

// WithGroup returns a handler that qualifies later attribute keys with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

func styleFor(level slog.Level) levelStyle {
	switch {
	case level >= slog.LevelError:
		return levelStyles[slog.LevelError]
	case level >= slog.LevelWarn:
		return levelStyles[slog.LevelWarn]
	case level >= slog.LevelInfo:
		return levelStyles[slog.LevelInfo]
	default:
		return levelStyles[slog.LevelDebug]
	}
}

func groupPrefix(groups []string) string {
	if len(groups) == 0 {
		return ""
	}
	return strings.Join(groups, ".") + "."
}

// appendAttr writes " key=value", flattening group attributes into dotted keys.
func appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		inner := prefix
		if a.Key != "" {
			inner += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			appendAttr(b, inner, ga)
		}
		return
	}

	b.WriteString(" ")
	b.WriteString(prefix)
	b.WriteString(a.Key)
	b.WriteString("=")
	b.WriteString(quoteIfNeeded(a.Value.String()))
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
