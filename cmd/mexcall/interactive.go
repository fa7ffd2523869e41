package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/mex-bridge/dispatch"
	"github.com/wippyai/mex-bridge/mx"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	opStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#98FB98"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectOp modelState = iota
	stateInputArgs
	stateShowResult
)

type interactiveModel struct {
	tbl      *dispatch.Table
	ops      []string
	err      error
	result   string
	args     textinput.Model
	nout     textinput.Model
	selected int
	focusIdx int
	state    modelState
}

type callResultMsg struct {
	err    error
	result string
}

func newInteractiveModel(tbl *dispatch.Table) *interactiveModel {
	return &interactiveModel{
		tbl:   tbl,
		ops:   tbl.Operations(),
		state: stateSelectOp,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state != stateInputArgs || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectOp && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectOp && m.selected < len(m.ops)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectOp:
				m.prepareInputs()
				m.state = stateInputArgs

			case stateInputArgs:
				return m, m.invoke

			case stateShowResult:
				m.state = stateSelectOp
				m.result = ""
				m.err = nil
			}

		case "tab":
			if m.state == stateInputArgs {
				if m.focusIdx == 0 {
					m.args.Blur()
					m.nout.Focus()
				} else {
					m.nout.Blur()
					m.args.Focus()
				}
				m.focusIdx = 1 - m.focusIdx
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectOp
			case stateShowResult:
				m.state = stateSelectOp
				m.result = ""
				m.err = nil
			}
		}

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.args, cmd = m.args.Update(msg)
		cmds = append(cmds, cmd)
		m.nout, cmd = m.nout.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) prepareInputs() {
	m.args = textinput.New()
	m.args.Placeholder = "comma-separated literals"
	m.args.Prompt = "args: "
	m.args.Width = 40
	m.args.Focus()

	max, _ := m.tbl.MaxOutputs(m.ops[m.selected])
	m.nout = textinput.New()
	m.nout.Prompt = "nout: "
	m.nout.SetValue(strconv.Itoa(min(1, max)))
	m.nout.Width = 4

	m.focusIdx = 0
}

func (m *interactiveModel) invoke() tea.Msg {
	op := m.ops[m.selected]

	inputs := []*mx.Array{mx.NewChar(op)}
	if v := strings.TrimSpace(m.args.Value()); v != "" {
		for _, lit := range strings.Split(v, ",") {
			a, err := parseArg(strings.TrimSpace(lit))
			if err != nil {
				return callResultMsg{err: err}
			}
			inputs = append(inputs, a)
		}
	}

	nout, err := strconv.Atoi(strings.TrimSpace(m.nout.Value()))
	if err != nil {
		return callResultMsg{err: fmt.Errorf("bad nout: %w", err)}
	}

	slots, err := m.tbl.Invoke(context.Background(), nout, inputs)
	if err != nil {
		return callResultMsg{err: err}
	}

	if len(slots) == 0 {
		return callResultMsg{result: "ok"}
	}
	parts := make([]string, len(slots))
	for i, s := range slots {
		parts[i] = render(s)
	}
	return callResultMsg{result: strings.Join(parts, "\n")}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("mexcall"))
	b.WriteString(" demo store\n\n")

	switch m.state {
	case stateSelectOp:
		b.WriteString("Select an operation:\n\n")
		for i, op := range m.ops {
			max, _ := m.tbl.MaxOutputs(op)
			line := fmt.Sprintf("%s %s", opStyle.Render(op),
				hintStyle.Render(fmt.Sprintf("(up to %d outputs)", max)))
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> ") + line)
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter call • q quit"))

	case stateInputArgs:
		b.WriteString(fmt.Sprintf("Calling %s\n\n", opStyle.Render(m.ops[m.selected])))
		b.WriteString(m.args.View())
		b.WriteString("\n")
		b.WriteString(m.nout.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("tab next field • enter call • esc back"))

	case stateShowResult:
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", opStyle.Render(m.ops[m.selected])))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func runInteractive(tbl *dispatch.Table) error {
	p := tea.NewProgram(newInteractiveModel(tbl), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
