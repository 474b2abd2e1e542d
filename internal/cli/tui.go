package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hypergraph/pkg/engine"
	"github.com/matzehuels/hypergraph/pkg/prefs"
	"github.com/matzehuels/hypergraph/pkg/render"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listDraggingStyle = lipgloss.NewStyle().Bold(true).Foreground(colorOK)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorFaint)
)

const (
	defaultNudge = 0.5
	minNudge     = 0.125
	maxNudge     = 8
)

// =============================================================================
// Command
// =============================================================================

// editCommand creates the interactive terminal editor.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [document.json]",
		Short: "Drag vertices interactively in the terminal",
		Long: `Open a document in an interactive editor.

  tab / shift+tab   select the next / previous vertex
  enter / space     start or finish dragging the selected vertex
  arrows / hjkl     move the dragged vertex
  + / -             change the step size
  s                 save the document
  q                 quit

Without an argument the file remembered in the preferences is opened.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				p, err := c.loadPrefs(cmd.Context())
				if err != nil {
					return err
				}
				path = p.File
			}
			return c.runEdit(cmd.Context(), path)
		},
	}
}

func (c *CLI) runEdit(ctx context.Context, path string) error {
	raw, err := readDocument(path)
	if err != nil {
		return err
	}
	opts, err := c.engineOptions()
	if err != nil {
		return err
	}
	// The terminal belongs to the editor; keep log lines out of it.
	opts.Logger = newLogger(io.Discard, c.Logger.GetLevel())

	scene := render.NewScene()
	eng := engine.New(scene, opts)
	warnings, err := eng.Load(raw)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	if store, err := c.newPrefs(); err == nil {
		if _, err := store.Update(ctx, func(p *prefs.Prefs) { p.File = path }); err != nil {
			c.Logger.Debug("remember file", "error", err)
		}
	}

	m, err := newEditorModel(eng, scene, path)
	if err != nil {
		return err
	}
	if len(warnings) > 0 {
		m.message = fmt.Sprintf("%d entities skipped while loading", len(warnings))
	}

	final, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(editorModel); ok && fm.saved {
		printSuccess("Saved %s", path)
	}
	return nil
}

// =============================================================================
// editorModel - Interactive drag editor
// =============================================================================

// editorModel is the bubbletea model for the drag editor.
type editorModel struct {
	eng   *engine.Engine
	scene *render.Scene
	path  string

	ids     []string // draggable vertex ids in document order
	cursor  int
	offset  int
	height  int
	nudge   float64
	message string
	saved   bool
	dirty   bool
}

func newEditorModel(eng *engine.Engine, scene *render.Scene, path string) (editorModel, error) {
	d, err := eng.Document()
	if err != nil {
		return editorModel{}, err
	}
	m := editorModel{eng: eng, scene: scene, path: path, height: 15, nudge: defaultNudge}
	for _, v := range d.AllVertices() {
		if !v.Synthetic {
			m.ids = append(m.ids, v.ID)
		}
	}
	return m, nil
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-10, 5)
	}
	return m, nil
}

func (m editorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state, dragged := m.eng.State()
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		if state == engine.Dragging {
			_ = m.eng.DragEnd()
		}
		return m, tea.Quit
	case "tab":
		if state == engine.Idle && len(m.ids) > 0 {
			m.cursor = (m.cursor + 1) % len(m.ids)
		}
	case "shift+tab":
		if state == engine.Idle && len(m.ids) > 0 {
			m.cursor = (m.cursor + len(m.ids) - 1) % len(m.ids)
		}
	case "enter", " ":
		m.toggleDrag(state)
	case "up", "k":
		m.move(dragged, 0, 1)
	case "down", "j":
		m.move(dragged, 0, -1)
	case "left", "h":
		m.move(dragged, -1, 0)
	case "right", "l":
		m.move(dragged, 1, 0)
	case "+", "=":
		m.nudge = min(m.nudge*2, maxNudge)
	case "-":
		m.nudge = max(m.nudge/2, minNudge)
	case "s":
		m.save()
	}
	m.scroll()
	return m, nil
}

func (m *editorModel) toggleDrag(state engine.State) {
	if len(m.ids) == 0 {
		return
	}
	id := m.ids[m.cursor]
	if state == engine.Dragging {
		if err := m.eng.DragEnd(); err != nil {
			m.message = err.Error()
			return
		}
		m.message = "released " + id
		return
	}
	if err := m.eng.DragStart(id); err != nil {
		m.message = err.Error()
		return
	}
	m.message = "dragging " + id
}

func (m *editorModel) move(id string, dx, dy float64) {
	if id == "" {
		m.message = "press enter to start dragging"
		return
	}
	v, ok := m.scene.Vertex(id)
	if !ok {
		return
	}
	x, y := v.Position.X+dx*m.nudge, v.Position.Y+dy*m.nudge
	if err := m.eng.DragTick(id, x, y); err != nil {
		m.message = err.Error()
		return
	}
	m.dirty = true
}

func (m *editorModel) save() {
	data, err := m.eng.Serialize()
	if err == nil {
		err = writeOutput(m.path, data)
	}
	if err != nil {
		m.message = "save failed: " + err.Error()
		return
	}
	m.saved, m.dirty = true, false
	m.message = "saved " + m.path
}

func (m *editorModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m editorModel) View() string {
	var b strings.Builder
	state, dragged := m.eng.State()

	title := m.path
	if m.dirty {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("tab select  ⏎ drag/release  ←↑↓→ move  +/- step  s save  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.ids))
	rows := make([][]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		id := m.ids[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		v, _ := m.scene.Vertex(id)
		rows = append(rows, []string{
			cursor, id,
			fmt.Sprintf("%.2f", v.Position.X), fmt.Sprintf("%.2f", v.Position.Y),
			fmt.Sprintf("%.2f × %.2f", v.Size.Width, v.Size.Height),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers("", "Vertex", "X", "Y", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			idx := m.offset + row
			switch {
			case idx >= len(m.ids):
				return lipgloss.NewStyle()
			case m.ids[idx] == dragged:
				return listDraggingStyle
			case idx == m.cursor:
				return listSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(colorText)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %s  step %g", m.cursor+1, len(m.ids), state, m.nudge)))
	if m.message != "" {
		b.WriteString("\n  ")
		b.WriteString(StyleValue.Render(m.message))
	}
	b.WriteString("\n")
	return b.String()
}
