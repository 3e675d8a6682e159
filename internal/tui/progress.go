// Package tui renders a live progress view while a run or suite
// executes. It only reads what internal/runner already exposes
// (MetricFrame via a StepObserver) -- runner never imports tui.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sankum/simuforge/internal/metricworld"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// FrameMsg carries one completed step into the bubbletea event loop.
// A runner.StepObserver pushes these onto a channel that the program
// reads from; DoneMsg closes it out.
type FrameMsg metricworld.MetricFrame

// DoneMsg signals the run finished, successfully or not.
type DoneMsg struct {
	Err error
}

// Model is the bubbletea model for one run's progress display.
type Model struct {
	specName   string
	totalSteps int
	frames     <-chan tea.Msg
	lastFrame  metricworld.MetricFrame
	started    time.Time
	done       bool
	err        error
	width      int
}

// NewModel wires a progress display to a channel of FrameMsg/DoneMsg
// values. The caller is responsible for pushing messages from a
// runner.StepObserver and sending DoneMsg when the run finishes.
// Closing the channel without a DoneMsg stops further updates but does
// not end the program.
func NewModel(specName string, totalSteps int, frames <-chan tea.Msg) Model {
	return Model{
		specName:   specName,
		totalSteps: totalSteps,
		frames:     frames,
		started:    time.Now(),
		width:      60,
	}
}

func (m Model) Init() tea.Cmd {
	return m.waitForMsg()
}

func (m Model) waitForMsg() tea.Cmd {
	return func() tea.Msg {
		return <-m.frames
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case FrameMsg:
		m.lastFrame = metricworld.MetricFrame(msg)
		return m, m.waitForMsg()
	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(cyan.Render(fmt.Sprintf("simuforge: %s", m.specName)))
	b.WriteString("\n\n")

	if m.totalSteps > 0 {
		b.WriteString(m.progressBar())
		b.WriteString("\n")
	}

	b.WriteString(dim.Render(fmt.Sprintf("step %d/%d  t=%.2fs", m.lastFrame.Step, m.totalSteps, m.lastFrame.Time)))
	b.WriteString("\n")
	b.WriteString(white.Render(fmt.Sprintf("energy  kinetic=%.4f potential=%.4f total=%.4f",
		m.lastFrame.Energy.Kinetic, m.lastFrame.Energy.Potential, m.lastFrame.Energy.Total)))
	b.WriteString("\n")
	b.WriteString(white.Render(fmt.Sprintf("contacts=%d max_penetration=%.6f violations=%d",
		m.lastFrame.Contacts.ContactCount, m.lastFrame.Contacts.MaxPenetration, m.lastFrame.Contacts.ConstraintViolations)))
	b.WriteString("\n")

	if m.done {
		if m.err != nil {
			b.WriteString(yellow.Render(fmt.Sprintf("\nrun ended with error: %v\n", m.err)))
		} else {
			b.WriteString(green.Render(fmt.Sprintf("\nrun complete in %s\n", time.Since(m.started).Round(time.Millisecond))))
		}
	}

	return b.String()
}

func (m Model) progressBar() string {
	barWidth := m.width - 2
	if barWidth < 10 {
		barWidth = 10
	}
	frac := 0.0
	if m.totalSteps > 0 {
		frac = float64(m.lastFrame.Step) / float64(m.totalSteps)
	}
	filled := int(frac * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	return green.Render(strings.Repeat("#", filled)) + dim.Render(strings.Repeat("-", barWidth-filled))
}

// StepObserverFor returns a runner.StepObserver-compatible func that
// forwards frames onto ch, suitable for Options.OnStep.
func StepObserverFor(ch chan<- tea.Msg) func(metricworld.MetricFrame) {
	return func(frame metricworld.MetricFrame) {
		ch <- FrameMsg(frame)
	}
}
