package cmd

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/edward9487/minecraft-mod-converter/list"
)

// TestResolveModelProgressCounting tests that entry messages advance the
// progress counter and are appended to the finished log
func TestResolveModelProgressCounting(t *testing.T) {
	var model tea.Model = initialResolveModel(2)

	model, _ = model.Update(ResolveProgressMsg{
		Type:  "entry",
		Entry: list.Entry{Title: "Sodium", Status: list.StatusResolvable},
	})

	m := model.(ResolveModel)
	if m.processed != 1 {
		t.Errorf("processed = %d, want 1", m.processed)
	}
	if len(m.finished) != 1 || !strings.Contains(m.finished[0], "Sodium") {
		t.Error("finished log should record the entry title")
	}
}

// TestResolveModelSurfacesAddedDependencies tests that the final status
// reports how many dependencies the pass appended
func TestResolveModelSurfacesAddedDependencies(t *testing.T) {
	var model tea.Model = initialResolveModel(1)

	msgs := []ResolveProgressMsg{
		{Type: "entry", Entry: list.Entry{Title: "Sodium", Status: list.StatusResolvable}},
		{Type: "entry", Entry: list.Entry{Title: "Fabric API", Status: list.StatusResolvable, IsDependency: true}},
		{Type: "done"},
	}
	for _, msg := range msgs {
		model, _ = model.Update(msg)
	}

	m := model.(ResolveModel)
	if !m.done {
		t.Fatal("done message should finish the model")
	}
	if !strings.Contains(m.status, "added 1 dependencies") {
		t.Errorf("final status %q should report the added-dependency count", m.status)
	}
}
