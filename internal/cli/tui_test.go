package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDescribeBuiltins(t *testing.T) {
	infos := describeBuiltins(1)
	if len(infos) < 2 {
		t.Fatalf("got %d datasets, want at least 2", len(infos))
	}
	for _, info := range infos {
		if info.Samples == 0 {
			t.Errorf("%s has no samples", info.Name)
		}
	}
}

func TestDatasetListModelSelect(t *testing.T) {
	m := NewDatasetListModel([]datasetInfo{{Name: "a"}, {Name: "b"}, {Name: "c"}})

	var model tea.Model = m
	for _, k := range []string{"down", "j", "down", "up"} {
		model, _ = model.Update(key(k))
	}
	if got := model.(DatasetListModel).Cursor; got != 1 {
		t.Fatalf("cursor = %d, want 1", got)
	}

	model, cmd := model.Update(key("enter"))
	if got := model.(DatasetListModel).Selected; got != "b" {
		t.Errorf("selected = %q, want b", got)
	}
	if cmd == nil {
		t.Error("enter should quit")
	}
}

func TestDatasetListModelJump(t *testing.T) {
	var model tea.Model = NewDatasetListModel([]datasetInfo{{Name: "a"}, {Name: "b"}, {Name: "c"}})

	model, _ = model.Update(key("G"))
	if got := model.(DatasetListModel).Cursor; got != 2 {
		t.Errorf("after G cursor = %d, want 2", got)
	}
	model, _ = model.Update(key("down"))
	if got := model.(DatasetListModel).Cursor; got != 2 {
		t.Errorf("down past the end moved the cursor to %d", got)
	}
	model, _ = model.Update(key("g"))
	if got := model.(DatasetListModel).Cursor; got != 0 {
		t.Errorf("after g cursor = %d, want 0", got)
	}

	var empty tea.Model = NewDatasetListModel(nil)
	empty, _ = empty.Update(key("G"))
	if got := empty.(DatasetListModel).Cursor; got != 0 {
		t.Errorf("G on an empty list set cursor %d", got)
	}
}

func TestDatasetListModelQuit(t *testing.T) {
	m := NewDatasetListModel([]datasetInfo{{Name: "a"}})
	model, cmd := m.Update(key("q"))
	if model.(DatasetListModel).Selected != "" {
		t.Error("quit should not select")
	}
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestDatasetListModelView(t *testing.T) {
	m := NewDatasetListModel(describeBuiltins(1))
	view := m.View()
	for _, want := range []string{"Select Dataset", "normal", "study"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
