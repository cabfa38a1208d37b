package cli

import (
	"fmt"
	"strings"

	"libdeps/internal/ui/report"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

func handleKeyActions(msg tea.KeyMsg, m model) (tea.Model, tea.Cmd) {
	filtering := m.moduleList.FilterState() == list.Filtering || m.issueList.FilterState() == list.Filtering
	if filtering {
		return forwardKey(msg, m)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		if m.mode == panelIssues {
			m.mode = panelModules
		} else {
			m.mode = panelIssues
			m.showDetails = false
		}
		return m, nil
	case "t":
		m.showTrend = !m.showTrend
		return m, nil
	case "r":
		if m.busy || m.ctrl == nil {
			return m, nil
		}
		m.busy = true
		m.status = "rescanning..."
		return m, rescanCmd(m)
	case "a":
		if m.busy || m.ctrl == nil {
			return m, nil
		}
		m.busy = true
		m.status = "reanalyzing..."
		return m, reanalyzeCmd(m)
	}

	if m.mode != panelModules {
		return forwardKey(msg, m)
	}

	switch msg.String() {
	case "enter":
		m.showDetails = true
		return refreshModuleDetails(m), nil
	case "esc", "backspace":
		m.showDetails = false
		m.details = ""
		return m, nil
	case "b":
		name, ok := selectedModule(m)
		if !ok || m.ctrl == nil {
			return m, nil
		}
		return m, toggleCmd(m, name)
	}
	return forwardKey(msg, m)
}

func forwardKey(msg tea.KeyMsg, m model) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.mode == panelIssues {
		m.issueList, cmd = m.issueList.Update(msg)
	} else {
		m.moduleList, cmd = m.moduleList.Update(msg)
	}
	return m, cmd
}

func selectedModule(m model) (string, bool) {
	if sel, ok := m.moduleList.SelectedItem().(item); ok {
		return sel.title, true
	}
	return "", false
}

func refreshModuleDetails(m model) model {
	name, ok := selectedModule(m)
	if !ok || m.result == nil {
		m.details = "No module selected."
		return m
	}
	var b strings.Builder
	if err := report.WriteModule(&b, m.result.Collection, name); err != nil {
		m.details = err.Error()
		return m
	}
	m.details = strings.TrimRight(b.String(), "\n")
	return m
}

func rescanCmd(m model) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		_, err := ctrl.RequestRescan(ctx, "ui")
		return actionResultMsg{action: "rescan", err: err}
	}
}

func reanalyzeCmd(m model) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		_, err := ctrl.Reanalyze(ctx)
		return actionResultMsg{action: "reanalyze", err: err}
	}
}

func toggleCmd(m model, name string) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		has, err := ctrl.ToggleBuildDescriptor(name)
		state := "without"
		if has {
			state = "with"
		}
		return actionResultMsg{action: "toggle", detail: fmt.Sprintf("%s now %s build descriptor", name, state), err: err}
	}
}
