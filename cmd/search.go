package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/edward9487/minecraft-mod-converter/list"
	"github.com/edward9487/minecraft-mod-converter/logger"
	"github.com/edward9487/minecraft-mod-converter/modrinth"

	"go.uber.org/zap"
)

const (
	searchDebounce = 300 * time.Millisecond
	searchLimit    = 10
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the registry and add mods to the list",
	Long: `Search Modrinth for mods. With a query argument the results are
printed once; without one an interactive picker opens where enter adds the
highlighted mod to the list.`,
	Run: func(_ *cobra.Command, args []string) {
		cfg, store, state := bootstrap(".")
		client, err := modrinth.NewClient(cfg)
		if err != nil {
			logger.Log.Fatalw("Failed to create Modrinth client", zap.Error(err))
		}

		if len(args) > 0 {
			runSearchOnce(client, strings.Join(args, " "))
			return
		}

		runSearchPicker(client, store, state)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearchOnce(client *modrinth.Client, query string) {
	hits, err := client.SearchProjects(context.Background(), query, searchLimit)
	if err != nil {
		logger.Log.Fatalw("Search failed", zap.Error(err))
	}
	if len(hits) == 0 {
		fmt.Println("No results.")
		return
	}
	for _, hit := range hits {
		fmt.Printf("%-24s %s\n", hit.Slug, hit.Title)
	}
}

// Message types
type searchDebounceMsg struct {
	seq int
}

type searchResultsMsg struct {
	seq  int
	hits []modrinth.SearchHit
	err  error
}

// SearchModel is the interactive picker. Every keystroke bumps seq; a
// debounce tick or a result carrying a stale seq is discarded, so a
// late-arriving response for a superseded query can never overwrite the
// current results.
type SearchModel struct {
	input   textinput.Model
	client  *modrinth.Client
	store   *list.Store
	state   *list.State
	hits    []modrinth.SearchHit
	cursor  int
	seq     int
	loading bool
	message string
	errText string
}

func initialSearchModel(client *modrinth.Client, store *list.Store, state *list.State) SearchModel {
	ti := textinput.New()
	ti.Placeholder = "search mods..."
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40

	return SearchModel{
		input:  ti,
		client: client,
		store:  store,
		state:  state,
	}
}

func (m SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SearchModel) debounce() tea.Cmd {
	seq := m.seq
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
}

func (m SearchModel) runSearch(seq int, query string) tea.Cmd {
	return func() tea.Msg {
		hits, err := m.client.SearchProjects(context.Background(), query, searchLimit)
		return searchResultsMsg{seq: seq, hits: hits, err: err}
	}
}

func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.cursor < len(m.hits)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			return m.addSelection()
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			m.seq++
			m.message = ""
			return m, tea.Batch(cmd, m.debounce())
		}
		return m, cmd

	case searchDebounceMsg:
		if msg.seq != m.seq {
			return m, nil // superseded by later input
		}
		query := strings.TrimSpace(m.input.Value())
		if query == "" {
			m.hits = nil
			m.cursor = 0
			return m, nil
		}
		m.loading = true
		return m, m.runSearch(msg.seq, query)

	case searchResultsMsg:
		if msg.seq != m.seq {
			return m, nil // stale response, discard
		}
		m.loading = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.hits = msg.hits
		if m.cursor >= len(m.hits) {
			m.cursor = 0
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m SearchModel) addSelection() (tea.Model, tea.Cmd) {
	if m.cursor >= len(m.hits) {
		return m, nil
	}
	hit := m.hits[m.cursor]
	if !m.state.Add(hit.ProjectID, "") {
		m.message = fmt.Sprintf("%s is already in the list", hit.Title)
		return m, nil
	}
	if e := m.state.Entry(hit.ProjectID); e != nil {
		e.Title = hit.Title
	}
	if err := m.store.Save(m.state); err != nil {
		m.errText = err.Error()
		return m, nil
	}
	m.message = fmt.Sprintf("Added %s", hit.Title)
	return m, nil
}

func (m SearchModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + m.input.View() + "\n\n")

	if m.loading {
		b.WriteString("  searching...\n")
	}
	for i, hit := range m.hits {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true)
		}
		b.WriteString(cursor + style.Render(fmt.Sprintf("%-24s %s", hit.Slug, hit.Title)) + "\n")
	}

	if m.errText != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(m.errText) + "\n")
	}
	if m.message != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.message) + "\n")
	}

	footer := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	b.WriteString("\n" + footer.Render("↑/↓: move  enter: add  esc: quit") + "\n")
	return b.String()
}

func runSearchPicker(client *modrinth.Client, store *list.Store, state *list.State) {
	m := initialSearchModel(client, store, state)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		logger.Log.Fatalw("Failed to run search view", zap.Error(err))
	}
}
