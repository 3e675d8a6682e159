package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sankum/simuforge/internal/metricworld"
)

func TestUpdateAppliesFrameMsg(t *testing.T) {
	ch := make(chan tea.Msg, 1)
	m := NewModel("box-stack", 100, ch)

	updated, _ := m.Update(FrameMsg(metricworld.MetricFrame{Step: 5, Time: 0.5}))
	got := updated.(Model)

	if got.lastFrame.Step != 5 {
		t.Errorf("lastFrame.Step = %d, want 5", got.lastFrame.Step)
	}
}

func TestUpdateMarksDoneOnDoneMsg(t *testing.T) {
	ch := make(chan tea.Msg, 1)
	m := NewModel("box-stack", 100, ch)

	updated, cmd := m.Update(DoneMsg{})
	got := updated.(Model)

	if !got.done {
		t.Error("expected done to be true after DoneMsg")
	}
	if cmd == nil {
		t.Error("expected a quit command after DoneMsg")
	}
}

func TestViewReportsErrorWhenDoneWithError(t *testing.T) {
	ch := make(chan tea.Msg, 1)
	m := NewModel("box-stack", 100, ch)
	updated, _ := m.Update(DoneMsg{Err: errBoom})
	got := updated.(Model)

	view := got.View()
	if !strings.Contains(view, "run ended with error") {
		t.Errorf("expected view to mention the error, got:\n%s", view)
	}
}

func TestProgressBarFillsProportionally(t *testing.T) {
	ch := make(chan tea.Msg, 1)
	m := NewModel("box-stack", 100, ch)
	m.width = 22
	m.lastFrame = metricworld.MetricFrame{Step: 50}

	bar := m.progressBar()
	if !strings.Contains(bar, "#") {
		t.Errorf("expected a partially filled bar, got %q", bar)
	}
}

func TestStepObserverForForwardsFrames(t *testing.T) {
	ch := make(chan tea.Msg, 1)
	observe := StepObserverFor(ch)

	observe(metricworld.MetricFrame{Step: 3})

	msg := <-ch
	frame, ok := msg.(FrameMsg)
	if !ok {
		t.Fatalf("expected FrameMsg, got %T", msg)
	}
	if frame.Step != 3 {
		t.Errorf("Step = %d, want 3", frame.Step)
	}
}

var errBoom = errFixture("boom")

type errFixture string

func (e errFixture) Error() string { return string(e) }
