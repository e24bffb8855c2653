package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

type prettyStyle struct {
	key, str, num, flag, stamp, msg lipgloss.Style
	level                           map[slog.Level]lipgloss.Style
}

func makePrettyStyle(r *lipgloss.Renderer) prettyStyle {
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return prettyStyle{
		key:   fg("8"),
		str:   fg("6"),
		num:   fg("3"),
		flag:  fg("5"),
		stamp: fg("8"),
		msg:   r.NewStyle().Bold(true),
		level: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): fg("8"),
			slog.LevelDebug:        fg("4"),
			slog.LevelInfo:         fg("2"),
			slog.LevelWarn:         fg("3"),
			slog.LevelError:        fg("1").Bold(true),
		},
	}
}

// prettyHandler writes one colorized line per record:
//
//	TIME LEVEL message key=value key=value
//
// Colors are only emitted when the output is a terminal.
type prettyHandler struct {
	opts   *slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	style  prettyStyle
	prefix string
	attrs  []byte
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{
		opts:  opts,
		mu:    &sync.Mutex{},
		w:     w,
		style: makePrettyStyle(lipgloss.NewRenderer(w)),
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	field := func(a slog.Attr) {
		if a = h.replace(nil, a); a.Equal(slog.Attr{}) {
			return
		}

		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}

		switch a.Key {
		case slog.TimeKey:
			buf.WriteString(h.style.stamp.Render(a.Value.String()))
		case slog.LevelKey:
			buf.WriteString(h.style.level[r.Level].Render(fmt.Sprintf("%-5s", a.Value.String())))
		case slog.MessageKey:
			buf.WriteString(h.style.msg.Render(a.Value.String()))
		default:
			h.appendAttr(&buf, "", a)
		}
	}

	if !r.Time.IsZero() {
		field(slog.Time(slog.TimeKey, r.Time))
	}

	field(slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			field(slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	field(slog.String(slog.MessageKey, r.Message))

	if len(h.attrs) > 0 {
		buf.Write(h.attrs)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&buf, h.prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h

	var buf bytes.Buffer
	for _, a := range attrs {
		h.appendAttr(&buf, h.prefix, a)
	}

	c.attrs = append(append([]byte(nil), h.attrs...), buf.Bytes()...)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyHandler) replace(groups []string, a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(groups, a)
}

func (h *prettyHandler) appendAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, g := range a.Value.Group() {
			h.appendAttr(buf, prefix, g)
		}

		return
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(h.style.key.Render(prefix + a.Key + "="))
	buf.WriteString(h.value(a.Value))
}

func (h *prettyHandler) value(v slog.Value) string {
	switch v.Kind() {
	case slog.KindInt64:
		return h.style.num.Render(strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		return h.style.num.Render(strconv.FormatUint(v.Uint64(), 10))
	case slog.KindFloat64:
		return h.style.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))
	case slog.KindBool:
		return h.style.flag.Render(strconv.FormatBool(v.Bool()))
	case slog.KindDuration:
		return h.style.num.Render(v.Duration().String())
	case slog.KindTime:
		return h.style.stamp.Render(v.Time().Format(DefaultTimeLayout))
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return h.style.level[slog.LevelError].Render(strconv.Quote(err.Error()))
		}
	}

	return h.style.str.Render(v.String())
}
