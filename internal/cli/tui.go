package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/familytree/pkg/family"
)

// =============================================================================
// PersonPicker - Interactive person selection
// =============================================================================

// PersonPicker is the bubbletea model for choosing a person from a list.
type PersonPicker struct {
	Title    string
	People   []family.Person
	Cursor   int
	Offset   int
	Height   int
	Selected *family.Person
}

// NewPersonPicker creates a picker over people.
func NewPersonPicker(title string, people []family.Person) PersonPicker {
	return PersonPicker{Title: title, People: people, Height: 15}
}

func (m PersonPicker) Init() tea.Cmd {
	return nil
}

func (m PersonPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.People)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.People) == 0 {
				return m, tea.Quit
			}
			p := m.People[m.Cursor]
			m.Selected = &p
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m PersonPicker) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(styleDim.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.People))
	visible := m.People[m.Offset:end]
	rows := peopleRows(visible)
	for i := range rows {
		cursor := "  "
		if m.Offset+i == m.Cursor {
			cursor = "▸ "
		}
		rows[i] = append([]string{cursor}, rows[i]...)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Name", "Lifespan", "Gender", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			current := m.Offset+row == m.Cursor
			base := styleDim
			if col == 2 {
				base = genderStyle(visible[row].Gender)
			}
			if current {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(styleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.People))))
	return b.String()
}

// pickPerson runs the picker and returns the chosen person, or false if the
// user quit without choosing.
func pickPerson(title string, people []family.Person) (family.Person, bool, error) {
	final, err := tea.NewProgram(NewPersonPicker(title, people)).Run()
	if err != nil {
		return family.Person{}, false, err
	}
	m := final.(PersonPicker)
	if m.Selected == nil {
		return family.Person{}, false, nil
	}
	return *m.Selected, true, nil
}
