package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/familytree/pkg/family"
)

func pickerPeople() []family.Person {
	return []family.Person{
		{ID: 1, Name: "Robert", Gender: family.GenderMale},
		{ID: 2, Name: "Margaret", Gender: family.GenderFemale},
		{ID: 3, Name: "Susan", Gender: family.GenderFemale},
	}
}

func press(m tea.Model, keys ...tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(k)
	}
	return m, cmd
}

func TestPersonPickerSelect(t *testing.T) {
	m, cmd := press(NewPersonPicker("Pick", pickerPeople()),
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown}, // clamped at the last row
		tea.KeyMsg{Type: tea.KeyUp},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	p := m.(PersonPicker)
	if p.Selected == nil || p.Selected.ID != 2 {
		t.Fatalf("Selected = %+v, want Margaret", p.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestPersonPickerQuit(t *testing.T) {
	m, cmd := press(NewPersonPicker("Pick", pickerPeople()), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if m.(PersonPicker).Selected != nil {
		t.Error("quitting should not select")
	}
	if cmd == nil {
		t.Error("q should quit the program")
	}
}

func TestPersonPickerScroll(t *testing.T) {
	var people []family.Person
	for i := range 20 {
		people = append(people, family.Person{ID: int64(i + 1), Name: "P"})
	}
	m := NewPersonPicker("Pick", people)
	m.Height = 5
	var model tea.Model = m
	for range 7 {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	p := model.(PersonPicker)
	if p.Cursor != 7 || p.Offset != 3 {
		t.Errorf("cursor %d offset %d, want 7 and 3", p.Cursor, p.Offset)
	}
}

func TestPersonPickerView(t *testing.T) {
	view := NewPersonPicker("Delete Person", pickerPeople()).View()
	for _, want := range []string{"Delete Person", "Robert", "Susan", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
