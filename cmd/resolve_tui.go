package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/edward9487/minecraft-mod-converter/list"
	"github.com/edward9487/minecraft-mod-converter/logger"
	"github.com/edward9487/minecraft-mod-converter/resolver"
	"github.com/edward9487/minecraft-mod-converter/ui"

	"go.uber.org/zap"
)

// ResolveProgressMsg represents a progress update from the resolution pass
type ResolveProgressMsg struct {
	Type  string // "entry", "error", "done"
	Entry list.Entry
	Err   error
}

// ResolveModel controls the UI for the resolve command
type ResolveModel struct {
	spinner      spinner.Model
	progressChan chan ResolveProgressMsg

	// State
	status    string
	finished  []string
	errText   string
	total     int
	processed int
	added     int
	done      bool
}

func initialResolveModel(total int) ResolveModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ResolveModel{
		spinner:      s,
		progressChan: make(chan ResolveProgressMsg, 100), // Buffer slightly to avoid blocking
		status:       "Resolving...",
		total:        total,
	}
}

func (m ResolveModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.waitForActivity(),
	)
}

func (m ResolveModel) waitForActivity() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.progressChan
		if !ok {
			return ResolveProgressMsg{Type: "done"}
		}
		return msg
	}
}

func (m ResolveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.done {
			return m, tea.Quit
		}

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ResolveProgressMsg:
		switch msg.Type {
		case "done":
			m.done = true
			m.status = "Finished"
			if m.added > 0 {
				m.status = fmt.Sprintf("Finished, added %d dependencies", m.added)
			}
			return m, tea.Quit

		case "entry":
			m.processed++
			m.status = fmt.Sprintf("Resolved %d/%d entries", m.processed, m.total)
			line := fmt.Sprintf("%s  %s", ui.RenderStatus(msg.Entry.Status), msg.Entry.Title)
			if msg.Entry.IsDependency {
				line += " (dependency)"
				m.added++
			}
			m.finished = append(m.finished, line)

		case "error":
			m.errText = msg.Err.Error()
		}

		return m, m.waitForActivity()
	}

	return m, nil
}

func (m ResolveModel) View() string {
	var symbol string
	if m.done {
		symbol = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("✓")
	} else {
		symbol = m.spinner.View()
	}

	s := fmt.Sprintf("\n %s %s\n\n", symbol, m.status)

	// Show last few finished entries to keep the view stable
	start := 0
	if len(m.finished) > 10 && !m.done {
		start = len(m.finished) - 10
	}
	for i := start; i < len(m.finished); i++ {
		s += fmt.Sprintf("  • %s\n", m.finished[i])
	}

	if m.errText != "" {
		s += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("Error: "+m.errText) + "\n"
	}

	return s
}

// runResolveTUI runs the pass under the progress view and reports whether
// it completed. Quitting mid-pass cancels the pass; the goroutine is always
// joined before returning so the caller never saves state a worker is still
// merging. Progress sends are select-guarded so workers cannot block on a
// channel nobody drains after an early quit.
func runResolveTUI(r *resolver.Resolver, state *list.State) bool {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := initialResolveModel(len(state.Active()))

	passDone := make(chan error, 1)
	go func() {
		defer close(m.progressChan)
		_, err := runResolvePass(ctx, r, state, func(e list.Entry) {
			select {
			case m.progressChan <- ResolveProgressMsg{Type: "entry", Entry: e}:
			case <-ctx.Done():
			}
		})
		if err != nil {
			select {
			case m.progressChan <- ResolveProgressMsg{Type: "error", Err: err}:
			case <-ctx.Done():
			}
		}
		passDone <- err
	}()

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		logger.Log.Fatalw("Failed to run resolve view", zap.Error(err))
	}

	cancel()
	return <-passDone == nil
}
