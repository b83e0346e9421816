package repl

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/dice/log"
)

const prompt = "🎲 "

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// formatCommand formats the command echo line with prompt and input styled.
func formatCommand(input string) string {
	return promptStyle.Render(prompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc    func() context.Context
	input      textinput.Model
	logger     log.Logger
	history    *History
	historyIdx int
	hint       string
	quitting   bool
}

// Run starts the REPL, persisting input history to historyPath. An empty
// historyPath keeps history in memory.
func Run(
	ctx context.Context,
	historyPath string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	history := NewHistory(historyPath)
	if err := history.Load(); err != nil {
		fmt.Printf("Warning: could not load history: %v\n", err)
	}

	logger.TraceContext(
		ctx,
		"repl start",
		slog.String("history", historyPath),
		slog.Int("entry_count", history.Len()),
	)

	p := tea.NewProgram(newModel(ctx, history, logger), tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
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
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		hint:       hint(ctx, ""),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
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

	if m.historyIdx < m.history.Len() {
		pos := lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx + 1))
		b.WriteString(hintStyle.Render(fmt.Sprintf("%s/%d", pos, m.history.Len())))
	} else {
		b.WriteString(hintStyle.Render(m.hint))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.setInput("")

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		return m.executeInput()

	case tea.KeyTab:
		if names := matchCommands(strings.TrimSpace(m.input.Value())); len(names) > 0 &&
			strings.HasPrefix(m.input.Value(), commandPrefix) {
			m.setInput(names[0])
		}

		return m, nil

	case tea.KeyUp:
		if m.historyIdx > 0 {
			m.historyIdx--
			if entry, err := m.history.At(m.historyIdx); err == nil {
				m.input.SetValue(entry)
				m.input.CursorEnd()
				m.hint = hint(m.ctxFunc(), entry)
			}
		}

		return m, nil

	case tea.KeyDown:
		if m.historyIdx < m.history.Len()-1 {
			m.historyIdx++
			if entry, err := m.history.At(m.historyIdx); err == nil {
				m.input.SetValue(entry)
				m.input.CursorEnd()
				m.hint = hint(m.ctxFunc(), entry)
			}
		} else {
			m.setInput("")
		}

		return m, nil
	}

	var cmd tea.Cmd

	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.hint = hint(m.ctxFunc(), m.input.Value())

	return m, cmd
}

// setInput replaces the input line and leaves history navigation.
func (m *model) setInput(s string) {
	m.input.SetValue(s)
	m.input.CursorEnd()
	m.historyIdx = m.history.Len()
	m.hint = hint(m.ctxFunc(), s)
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	ctx := m.ctxFunc()

	if err := m.history.Add(input); err != nil {
		m.logger.WarnContext(ctx, "history write failed", slog.Any("error", err))
	}

	m.setInput("")

	echo := tea.Println(formatCommand(input))

	if strings.HasPrefix(input, commandPrefix) {
		return m.executeCommand(input, echo)
	}

	out, err := evaluate(ctx, input, m.logger)
	if err != nil {
		m.logger.DebugContext(ctx, "repl eval failed",
			slog.String("input", input),
			slog.Any("error", err),
		)

		return m, tea.Sequence(echo, tea.Println(errorStyle.Render(err.Error())))
	}

	return m, tea.Sequence(echo, tea.Println(resultStyle.Render(out)))
}

func (m model) executeCommand(input string, echo tea.Cmd) (model, tea.Cmd) {
	switch input {
	case ":quit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case ":clear":
		return m, tea.ClearScreen

	case ":help":
		return m, tea.Sequence(echo, tea.Println(helpMessage()))

	case ":history":
		entries := m.history.Entries()

		var b strings.Builder
		for i, e := range entries {
			fmt.Fprintf(&b, "%4d  %s\n", i+1, e)
		}

		return m, tea.Sequence(echo, tea.Println(strings.TrimRight(b.String(), "\n")))
	}

	msg := fmt.Sprintf("%v: %s", ErrUnknownCommand, input)
	if names := matchCommands(input); len(names) > 0 {
		msg += " (did you mean " + names[0] + "?)"
	}

	return m, tea.Sequence(echo, tea.Println(errorStyle.Render(msg)))
}
