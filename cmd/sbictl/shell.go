// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/siderolabs/go-sbi/pkg/sbi"
	"github.com/siderolabs/go-sbi/pkg/sbitest"
)

var (
	opStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "interactively run calls against the emulated runtime",
	RunE:  shell,
}

type shellState int

const (
	stateSelectOp shellState = iota
	stateInputArgs
	stateShowResult
)

type shellModel struct {
	fw       *sbitest.Firmware
	ops      []operation
	inputs   []textinput.Model
	result   string
	selected int
	focusIdx int
	state    shellState
}

func newShellModel(fw *sbitest.Firmware) *shellModel {
	var ops []operation

	for _, e := range catalogue {
		for _, op := range e.ops {
			ops = append(ops, operation{
				name: e.name + "/" + op.name,
				args: op.args,
				ext:  op.ext,
				fn:   op.fn,
			})
		}
	}

	return &shellModel{fw: fw, ops: ops}
}

func (m *shellModel) Init() tea.Cmd {
	return nil
}

func (m *shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.state {
	case stateSelectOp:
		return m.updateSelect(keyMsg)
	case stateInputArgs:
		return m.updateInput(keyMsg)
	case stateShowResult:
		switch keyMsg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		default:
			m.state = stateSelectOp
			m.result = ""

			return m, nil
		}
	}

	return m, nil
}

func (m *shellModel) updateSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.ops)-1 {
			m.selected++
		}
	case "enter":
		op := m.ops[m.selected]
		if len(op.args) == 0 {
			m.run(nil)

			return m, nil
		}

		m.inputs = make([]textinput.Model, len(op.args))
		for i, name := range op.args {
			ti := textinput.New()
			ti.Placeholder = name
			m.inputs[i] = ti
		}

		m.focusIdx = 0
		m.inputs[0].Focus()
		m.state = stateInputArgs
	}

	return m, nil
}

func (m *shellModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.state = stateSelectOp

		return m, nil
	case "enter", "tab":
		if msg.String() == "enter" && m.focusIdx == len(m.inputs)-1 {
			values := make([]string, len(m.inputs))
			for i := range m.inputs {
				values[i] = m.inputs[i].Value()
			}

			m.run(values)

			return m, nil
		}

		m.inputs[m.focusIdx].Blur()
		m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
		m.inputs[m.focusIdx].Focus()

		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)

	return m, cmd
}

// run dispatches the selected operation into the emulated runtime and
// formats the result.
func (m *shellModel) run(values []string) {
	op := m.ops[m.selected]

	var frame [6]uint64

	for i, v := range values {
		word, err := parseWord(v)
		if err != nil {
			m.result = errStyle.Render(fmt.Sprintf("parsing %s: %v", op.args[i], err))
			m.state = stateShowResult

			return
		}

		frame[i] = word
	}

	ret := m.fw.Ecall(op.ext, op.fn, frame)

	style := okStyle
	if ret.Error != 0 {
		style = errStyle
	}

	result := fmt.Sprintf("%s\nerror: %s\nvalue: %#x",
		op.name, style.Render(statusName(ret.Error)), ret.Value)

	if op.ext == sbi.ExtHSM && op.fn == sbi.HSMHartGetStatus && ret.Error == 0 {
		result += fmt.Sprintf(" (%s)", sbi.HartState(ret.Value))
	}

	m.result = result
	m.state = stateShowResult
}

func (m *shellModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("sbictl shell") + "\n\n")

	switch m.state {
	case stateSelectOp:
		for i, op := range m.ops {
			line := fmt.Sprintf("%-26s a7=%#x a6=%d", op.name, op.ext, op.fn)

			if i == m.selected {
				b.WriteString(selectedStyle.Render("> "+line) + "\n")
			} else {
				b.WriteString(opStyle.Render("  "+line) + "\n")
			}
		}

		b.WriteString(helpStyle.Render("\nup/down select, enter call, q quit"))

	case stateInputArgs:
		b.WriteString(opStyle.Render(m.ops[m.selected].name) + "\n\n")

		for i := range m.inputs {
			b.WriteString(m.inputs[i].View() + "\n")
		}

		b.WriteString(helpStyle.Render("\ntab next field, enter call, esc back"))

	case stateShowResult:
		b.WriteString(m.result + "\n")
		b.WriteString(helpStyle.Render("\nany key to continue, q quit"))
	}

	return b.String()
}

func shell(_ *cobra.Command, _ []string) error {
	_, fw, err := newEmulator()
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(newShellModel(fw)).Run()

	return err
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
