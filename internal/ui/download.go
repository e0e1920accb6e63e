// Package ui provides internal state management and rendering utilities for
// terminal download feedback.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zoomgrab-cli/zoomgrab/icon"
	"github.com/zoomgrab-cli/zoomgrab/style"
	"github.com/zoomgrab-cli/zoomgrab/util"
)

type progressMsg struct {
	written int64
	total   int64
}

type doneMsg struct {
	err error
}

// downloadModel renders a single download as a gradient progress bar, or a
// running byte counter when the server does not announce a length.
type downloadModel struct {
	label   string
	bar     progress.Model
	written int64
	total   int64
	err     error
	done    bool
}

func (m downloadModel) Init() tea.Cmd {
	return nil
}

func (m downloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.written, m.total = msg.written, msg.total
		return m, nil
	case doneMsg:
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.err = fmt.Errorf("interrupted")
			m.done = true
			return m, tea.Quit
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m downloadModel) View() string {
	if m.done {
		if m.err != nil {
			return fmt.Sprintf("%s %s\n", icon.Get(icon.Fail), m.label)
		}
		return fmt.Sprintf("%s %s %s\n", icon.Get(icon.Success), m.label, style.Faint(humanBytes(m.written)))
	}

	var meter string
	if m.total > 0 {
		meter = m.bar.ViewAs(float64(m.written) / float64(m.total))
	} else {
		meter = style.Faint(humanBytes(m.written))
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n", icon.Get(icon.Download), m.label))
	b.WriteString(meter)
	b.WriteString("\n")
	return b.String()
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// Download drives a live progress display for a single transfer. Report is
// safe to call from the goroutine performing the transfer; Finish stops the
// display and returns once the final frame has been painted.
type Download struct {
	program *tea.Program
	result  chan error
}

// StartDownload begins rendering a progress display labelled with the file
// being fetched.
func StartDownload(label string) *Download {
	model := downloadModel{
		label: label,
		bar:   progress.New(progress.WithDefaultGradient()),
	}

	var opts []tea.ProgramOption
	if _, _, err := util.TerminalSize(); err != nil {
		// Piped output: skip live rendering, frames would garble the stream.
		opts = append(opts, tea.WithoutRenderer(), tea.WithInput(nil))
	}

	d := &Download{
		program: tea.NewProgram(model, opts...),
		result:  make(chan error, 1),
	}

	go func() {
		_, err := d.program.Run()
		d.result <- err
	}()

	return d
}

// Report forwards transfer progress to the display.
func (d *Download) Report(written, total int64) {
	d.program.Send(progressMsg{written: written, total: total})
}

// Finish closes the display, showing success or failure for err.
func (d *Download) Finish(err error) {
	d.program.Send(doneMsg{err: err})
	<-d.result
}
