package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/netvalue/pkg/graph"
	"github.com/matzehuels/netvalue/pkg/network"
)

func starModel(t *testing.T) RankModel {
	t.Helper()
	g := network.New(nil)
	for _, id := range []string{"hub", "a", "b", "c"} {
		if err := g.AddNode(network.Node{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	for _, id := range []string{"a", "b", "c"} {
		if err := g.AddEdge(network.Edge{From: "hub", To: id}); err != nil {
			t.Fatal(err)
		}
	}
	leaf := 10.0 / 3
	scores := []graph.Score{{Node: "hub", Value: 6}, {Node: "a", Value: leaf}, {Node: "b", Value: leaf}, {Node: "c", Value: leaf}}
	return NewRankModel(g, scores, 16)
}

func press(m RankModel, key string) RankModel {
	var msg tea.KeyMsg
	switch key {
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(RankModel)
}

func TestRankModelNavigation(t *testing.T) {
	m := starModel(t)

	m = press(m, "up")
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0 at top", m.Cursor)
	}
	for range 10 {
		m = press(m, "j")
	}
	if m.Cursor != 3 {
		t.Errorf("cursor = %d, want clamped to 3", m.Cursor)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 14})
	m = next.(RankModel)
	if m.Height != 5 || m.Offset != 0 {
		t.Errorf("height/offset = %d/%d, want 5/0", m.Height, m.Offset)
	}
}

func TestRankModelSort(t *testing.T) {
	m := press(starModel(t), "s")
	var got []string
	for _, s := range m.Scores {
		got = append(got, s.Node)
	}
	if strings.Join(got, ",") != "a,b,c,hub" {
		t.Errorf("sorted by name = %v", got)
	}

	m = press(m, "s")
	if m.Scores[0].Node != "hub" {
		t.Errorf("sorted by value starts with %s, want hub", m.Scores[0].Node)
	}
}

func TestRankModelView(t *testing.T) {
	view := starModel(t).View()
	for _, want := range []string{"Shapley Ranking", "hub", "6.0000", "37.5%", "degree", "a, b, c"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	empty := NewRankModel(network.New(nil), nil, 0)
	if !strings.Contains(empty.View(), "no nodes") {
		t.Error("empty ranking should say so")
	}
}

func TestRankModelQuit(t *testing.T) {
	_, cmd := starModel(t).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
