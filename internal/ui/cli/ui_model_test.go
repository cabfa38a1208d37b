package cli

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	coreapp "libdeps/internal/core/app"
	"libdeps/internal/data/history"
	"libdeps/internal/engine/depmap"
	"libdeps/internal/engine/graph"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeController struct {
	mu       sync.Mutex
	result   *coreapp.Result
	toggled  []string
	rescans  []string
	analyses int
	handler  func(coreapp.Update)
}

func (f *fakeController) Current() *coreapp.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

func (f *fakeController) RequestRescan(_ context.Context, trigger string) (*coreapp.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rescans = append(f.rescans, trigger)
	return f.result, nil
}

func (f *fakeController) Reanalyze(context.Context) (*coreapp.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.analyses++
	return f.result, nil
}

func (f *fakeController) ToggleBuildDescriptor(name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toggled = append(f.toggled, name)
	return true, nil
}

func (f *fakeController) SetUpdateHandler(handler func(coreapp.Update)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handler = handler
}

func testResult() *coreapp.Result {
	c := graph.Build(graph.DependencyGraph{
		"a": nil,
		"b": {"a"},
		"c": {"b", "a"},
		"d": {"e"},
		"e": {"d"},
	}, graph.BuildOptions{HasBuildDescriptor: func(name string) bool { return name == "a" }})
	return &coreapp.Result{
		RunID:      "run-1",
		Collection: c,
		Cycles:     c.Cycles(),
		Missing:    c.MissingDescriptors(),
		Unresolved: []depmap.Unresolved{{File: "boost/c.hpp", Target: "boost/nowhere.hpp"}},
		FileCount:  5,
		Finished:   time.Now(),
	}
}

func sizedModel(t *testing.T, ctrl Controller) model {
	t.Helper()
	m := initialModel(context.Background(), ctrl, nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(model)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_UpdateMsgPopulatesLists(t *testing.T) {
	m := sizedModel(t, &fakeController{})
	next, _ := m.Update(updateMsg{result: testResult()})
	m = next.(model)

	if len(m.modules) != 5 || m.modules[0] != "a" {
		t.Fatalf("expected modules ordered by reverse dependencies, got %v", m.modules)
	}
	if got := len(m.issueList.Items()); got != 2 {
		t.Fatalf("expected one cycle and one unresolved issue, got %d", got)
	}

	view := m.View()
	if !strings.Contains(view, "1 cycles") || !strings.Contains(view, "descriptors 1/5") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

func TestModel_NilResultClearsLists(t *testing.T) {
	m := sizedModel(t, &fakeController{})
	next, _ := m.Update(updateMsg{result: testResult()})
	next, _ = next.(model).Update(updateMsg{result: nil})
	m = next.(model)

	if len(m.moduleList.Items()) != 0 || len(m.issueList.Items()) != 0 {
		t.Fatal("expected lists to be cleared")
	}
	if !strings.Contains(m.View(), "No analysis yet") {
		t.Fatal("expected empty state in view")
	}
}

func TestModel_TabSwitchesPanel(t *testing.T) {
	m := sizedModel(t, &fakeController{})
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if next.(model).mode != panelIssues {
		t.Fatal("expected issues panel after tab")
	}
	next, _ = next.(model).Update(tea.KeyMsg{Type: tea.KeyTab})
	if next.(model).mode != panelModules {
		t.Fatal("expected modules panel after second tab")
	}
}

func TestModel_EnterShowsModuleDetails(t *testing.T) {
	m := sizedModel(t, &fakeController{})
	next, _ := m.Update(updateMsg{result: testResult()})
	next, _ = next.(model).Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)

	if !m.showDetails || !strings.Contains(m.details, "a") {
		t.Fatalf("expected details for module a, got %q", m.details)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if next.(model).showDetails {
		t.Fatal("expected esc to close details")
	}
}

func TestModel_ToggleRunsAgainstSelectedModule(t *testing.T) {
	ctrl := &fakeController{}
	m := sizedModel(t, ctrl)
	next, _ := m.Update(updateMsg{result: testResult()})
	_, cmd := next.(model).Update(keyRunes("b"))
	if cmd == nil {
		t.Fatal("expected toggle command")
	}

	msg, ok := cmd().(actionResultMsg)
	if !ok {
		t.Fatalf("expected actionResultMsg, got %T", cmd())
	}
	if msg.err != nil || !strings.Contains(msg.detail, "a now with build descriptor") {
		t.Fatalf("unexpected toggle result: %+v", msg)
	}
	if len(ctrl.toggled) != 1 || ctrl.toggled[0] != "a" {
		t.Fatalf("unexpected toggled modules: %v", ctrl.toggled)
	}
}

func TestModel_RescanAndReanalyze(t *testing.T) {
	ctrl := &fakeController{result: testResult()}
	m := sizedModel(t, ctrl)

	next, cmd := m.Update(keyRunes("r"))
	if cmd == nil || !next.(model).busy {
		t.Fatal("expected busy rescan")
	}
	if _, again := next.(model).Update(keyRunes("r")); again != nil {
		t.Fatal("expected no second rescan while busy")
	}
	done, _ := next.(model).Update(cmd())
	if done.(model).busy || done.(model).status != "rescan done" {
		t.Fatalf("unexpected status %q", done.(model).status)
	}

	_, cmd = done.(model).Update(keyRunes("a"))
	if cmd == nil {
		t.Fatal("expected reanalyze command")
	}
	cmd()

	if len(ctrl.rescans) != 1 || ctrl.rescans[0] != "ui" || ctrl.analyses != 1 {
		t.Fatalf("unexpected controller calls: rescans=%v analyses=%d", ctrl.rescans, ctrl.analyses)
	}
}

func TestModel_TrendOverlay(t *testing.T) {
	runs := []history.Run{{
		RunID:       "r1",
		ProjectKey:  "default",
		Timestamp:   time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		ModuleCount: 4,
		FileCount:   10,
	}}
	m := initialModel(context.Background(), &fakeController{}, runs)
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	next, _ := sized.(model).Update(keyRunes("t"))
	if !next.(model).showTrend {
		t.Fatal("expected trend overlay")
	}
	if strings.Contains(next.(model).View(), "No recorded runs") {
		t.Fatal("expected trend rows instead of empty notice")
	}

	empty := initialModel(context.Background(), &fakeController{}, nil)
	if !strings.Contains(renderTrendOverlay(empty.runs), "No recorded runs") {
		t.Fatal("expected empty notice")
	}
}
