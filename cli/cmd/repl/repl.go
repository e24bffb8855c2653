package repl

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/confgen/conf"
	"github.com/ardnew/confgen/log"
)

const (
	prompt       = "➜ "
	defaultWidth = 80
)

const helpMessage = `
Type an expression to evaluate it against the configuration.
Sections are variables and keys are members, e.g. Server.PORT > 1024.

Commands:

  :help     Print this message
  :list     List sections and their entries
  :clear    Clear screen
  :quit     Exit

Keys:
  Tab / Shift-Tab   Cycle through completion candidates
  Enter             Accept the selected candidate, or evaluate
  Esc               Discard the selected candidate
  Up / Down         Navigate history
  Ctrl-C            Clear the line, or exit on an empty line
  Ctrl-D            Exit on an empty line`

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = suggestionStyle.Bold(true)
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

// Option configures [Run].
type Option func(*options)

type options struct {
	title        string
	historyFile  string
	historyLimit int
	logger       log.Logger
}

// WithTitle sets the name shown in the greeting.
func WithTitle(title string) Option { return func(o *options) { o.title = title } }

// WithHistoryFile persists the input history to path.
func WithHistoryFile(path string) Option { return func(o *options) { o.historyFile = path } }

// WithHistoryLimit bounds the number of history entries kept.
func WithHistoryLimit(n int) Option { return func(o *options) { o.historyLimit = n } }

// WithLogger sets the logger receiving trace records. It defaults to the
// package-level logger.
func WithLogger(l log.Logger) Option { return func(o *options) { o.logger = l } }

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	doc          *conf.Document
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	greeting     string
	quitting     bool
}

// Run starts an interactive shell evaluating expressions against doc until
// the user quits or ctx is cancelled.
func Run(ctx context.Context, doc *conf.Document, opts ...Option) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if doc == nil {
		return ErrNoDocument
	}

	o := options{logger: log.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	history := NewHistory(o.historyFile, o.historyLimit)
	if err := history.Load(); err != nil {
		o.logger.WarnContext(ctx, "could not load history",
			slog.String("file", o.historyFile),
			slog.Any("error", err))
	}

	o.logger.TraceContext(ctx, "repl history loaded",
		slog.Int("entry_count", history.Len()))

	m := newModel(ctx, doc, history, o.logger)

	m.greeting = fmt.Sprintf("%s: %d sections (:help for help)", o.title, doc.Len())

	_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()

	return err
}

func newModel(
	ctx context.Context,
	doc *conf.Document,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		doc:        doc,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	if m.greeting == "" {
		return textinput.Blink
	}

	return tea.Batch(textinput.Blink, tea.Println(hintStyle.Render(m.greeting)))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(prompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(m.input.Value()) == "":
		b.WriteString(hintStyle.Render("Type an expression, or :help"))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()))

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}

		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyMove(-1), nil

	case tea.KeyDown:
		return m.historyMove(1), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)
		}

		return m, nil

	case tea.KeyRunes, tea.KeySpace:
		// Typing keeps the selected candidate and ends tab-cycling.
		var cmd tea.Cmd

		m.tabActive = false
		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// Any other key (backspace, delete, cursor movement) edits without
	// auto-completion.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle selects the next (step 1) or previous (step -1) candidate and
// writes it into the input.
func (m model) cycle(step int) model {
	switch len(m.matches) {
	case 0:
		return m

	case 1:
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + step + len(m.matches)) % len(m.matches)
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word in the input with
// replacement and moves the cursor after it.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	cursor := m.wordStart + len(replacement)

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(cursor)

	m.wordEnd = cursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true and the typed word already equals the sole
// candidate, the completion is accepted. Deletions and cursor movement pass
// false so editing never completes unexpectedly.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()
	m.suggIdx = -1

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.matches = nil
	}
}

// historyMove replaces the input with the entry step positions away in the
// history. Moving past the newest entry clears the input.
func (m model) historyMove(step int) model {
	i := m.historyIdx + step
	if i < 0 || i > m.history.Len() {
		return m
	}

	m.historyIdx = i
	m.tabActive = false

	line, err := m.history.Line(i)
	if err != nil {
		line = ""
	}

	m.input.SetValue(line)
	m.input.SetCursor(len(line))
	refreshMatches(&m, false)

	return m
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	if err := m.history.Add(input); err != nil {
		m.logger.DebugContext(m.ctxFunc(), "could not save history", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()
	m.input.SetValue("")
	refreshMatches(&m, false)

	echo := tea.Println(promptStyle.Render(prompt) + inputStyle.Render(input))

	if name, ok := strings.CutPrefix(input, commandPrefix); ok {
		return m.executeCommand(strings.TrimSpace(name), echo)
	}

	result, err := m.doc.Eval(m.ctxFunc(), input)

	m.logger.TraceContext(m.ctxFunc(), "repl eval",
		slog.String("input", input),
		slog.Bool("ok", err == nil))

	if err != nil {
		return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	return m, tea.Sequence(echo, tea.Println(resultStyle.Render(formatResult(result))))
}

func (m model) executeCommand(name string, echo tea.Cmd) (model, tea.Cmd) {
	switch name {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage))

	case "l", "list":
		return m, tea.Sequence(echo, tea.Println(listSections(m.doc)))

	case "c", "clear":
		return m, tea.ClearScreen
	}

	return m, tea.Sequence(echo,
		tea.Println(errorStyle.Render("unknown command: "+name+" (try :help)")))
}

// listSections renders every section with its entries.
func listSections(doc *conf.Document) string {
	var b strings.Builder

	for s := range doc.All() {
		fmt.Fprintf(&b, "  %s\n", promptStyle.Render(s.Name()))

		for e := range s.All() {
			fmt.Fprintf(&b, "    %s %s\n",
				e.Key(),
				hintStyle.Render(e.GoType()+" = "+e.Value().Literal()))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// formatResult renders an evaluation result, quoting strings so they are
// distinguishable from other values.
func formatResult(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"

	case string:
		return strconv.Quote(v)
	}

	return fmt.Sprint(v)
}
