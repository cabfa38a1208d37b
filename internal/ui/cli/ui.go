package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	coreapp "libdeps/internal/core/app"
	"libdeps/internal/data/history"
	"libdeps/internal/ui/report"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	cycleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	unresolvedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(0, 1)
)

// Controller is the part of the analysis app the terminal UI drives.
type Controller interface {
	Current() *coreapp.Result
	RequestRescan(ctx context.Context, trigger string) (*coreapp.Result, error)
	Reanalyze(ctx context.Context) (*coreapp.Result, error)
	ToggleBuildDescriptor(name string) (bool, error)
	SetUpdateHandler(handler func(coreapp.Update))
}

type item struct {
	title, desc string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type panelMode int

const (
	panelModules panelMode = iota
	panelIssues
)

type model struct {
	ctx        context.Context
	ctrl       Controller
	moduleList list.Model
	issueList  list.Model
	mode       panelMode
	result     *coreapp.Result
	modules    []string
	runs       []history.Run
	showTrend  bool
	lastUpdate time.Time
	busy       bool
	status     string

	details     string
	showDetails bool
}

type updateMsg struct {
	result *coreapp.Result
}

type actionResultMsg struct {
	action string
	detail string
	err    error
}

func initialModel(ctx context.Context, ctrl Controller, runs []history.Run) model {
	moduleList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	moduleList.Title = "Modules by reverse dependencies"
	moduleList.SetShowStatusBar(false)
	moduleList.SetFilteringEnabled(true)

	issueList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	issueList.Title = "Detected Issues"
	issueList.SetShowStatusBar(false)
	issueList.SetFilteringEnabled(true)

	return model{
		ctx:        ctx,
		ctrl:       ctrl,
		moduleList: moduleList,
		issueList:  issueList,
		mode:       panelModules,
		runs:       runs,
		lastUpdate: time.Now(),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return handleKeyActions(msg, m)
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		width := msg.Width - h
		height := msg.Height - v - 8
		if height < 5 {
			height = 5
		}
		m.moduleList.SetSize(width, height)
		m.issueList.SetSize(width, height)
	case updateMsg:
		m = m.applyResult(msg.result)
	case actionResultMsg:
		m.busy = false
		switch {
		case msg.err != nil:
			m.status = fmt.Sprintf("%s failed: %v", msg.action, msg.err)
		case msg.detail != "":
			m.status = fmt.Sprintf("%s: %s", msg.action, msg.detail)
		default:
			m.status = fmt.Sprintf("%s done", msg.action)
		}
	}

	var cmd tea.Cmd
	if m.mode == panelIssues {
		m.issueList, cmd = m.issueList.Update(msg)
	} else {
		m.moduleList, cmd = m.moduleList.Update(msg)
	}
	return m, cmd
}

func (m model) applyResult(r *coreapp.Result) model {
	m.result = r
	m.lastUpdate = time.Now()
	if r == nil {
		m.modules = nil
		m.moduleList.SetItems(nil)
		m.issueList.SetItems(nil)
		return m
	}

	c := r.Collection
	sorted := c.SortedByRevDeps()
	m.modules = make([]string, 0, len(sorted))
	moduleItems := make([]list.Item, 0, len(sorted))
	for _, mod := range sorted {
		m.modules = append(m.modules, mod.Name)
		descriptor := "no"
		if mod.HasBuildDescriptor {
			descriptor = "yes"
		}
		desc := fmt.Sprintf("level=%d deps=%d rev_deps=%d descriptor=%s blocked=%d",
			mod.Level, len(mod.AllDeps), len(mod.AllRevDeps), descriptor, c.BlockCount(mod))
		if c.InCycle(mod) {
			desc += " cycle"
		}
		moduleItems = append(moduleItems, item{title: mod.Name, desc: desc})
	}
	m.moduleList.SetItems(moduleItems)

	issues := make([]list.Item, 0, len(r.Cycles)+len(r.Unresolved)+len(r.Drift))
	for _, cycle := range r.Cycles {
		issues = append(issues, item{title: "Cycle", desc: strings.Join(cycle, " ")})
	}
	for _, u := range r.Unresolved {
		issues = append(issues, item{title: "Unresolved Include", desc: fmt.Sprintf("%s in %s", u.Target, u.File)})
	}
	for _, d := range r.Drift {
		issues = append(issues, item{
			title: "Descriptor Drift: " + d.Module,
			desc:  fmt.Sprintf("files=%s descriptor=%s", strings.Join(d.FileDeps, " "), strings.Join(d.DescriptorDeps, " ")),
		})
	}
	m.issueList.SetItems(issues)

	if m.showDetails {
		m = refreshModuleDetails(m)
	}
	return m
}

func (m model) View() string {
	var summary string
	moduleCount, fileCount := 0, 0
	if r := m.result; r != nil {
		moduleCount = r.Collection.Len()
		fileCount = r.FileCount
		if len(r.Cycles) == 0 && len(r.Unresolved) == 0 {
			summary = successStyle.Render("No cycles")
		} else {
			summary = fmt.Sprintf("%s | %s",
				cycleStyle.Render(fmt.Sprintf("%d cycles", len(r.Cycles))),
				unresolvedStyle.Render(fmt.Sprintf("%d unresolved", len(r.Unresolved))))
		}
		if !r.FileMode {
			covered := moduleCount - len(r.Missing)
			summary += statusStyle.Render(fmt.Sprintf(" | descriptors %d/%d", covered, moduleCount))
		}
		if r.RootModule != "" {
			summary += statusStyle.Render(" | root " + r.RootModule)
		}
	} else {
		summary = statusStyle.Render("No analysis yet")
	}

	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d files | %d modules",
		m.lastUpdate.Format("15:04:05"), fileCount, moduleCount))
	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("Library Dependency Monitor"), status, summary)

	body := m.moduleList.View()
	if m.mode == panelIssues {
		body = m.issueList.View()
	}
	if m.showDetails {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", detailStyle.Render(m.details))
	}
	if m.showTrend {
		body += "\n\n" + renderTrendOverlay(m.runs)
	}
	if m.status != "" {
		body += "\n\n" + statusStyle.Render(m.status)
	}
	return docStyle.Render(header + "\n" + renderHelp(m) + "\n\n" + body)
}

func renderHelp(m model) string {
	keys := "tab: switch panel | r: rescan | a: reanalyze | t: trend | q: quit"
	if m.mode == panelModules {
		keys = "enter: details | b: toggle descriptor | esc: close | " + keys
	}
	if m.busy {
		keys += " | working..."
	}
	return statusStyle.Render(keys)
}

func renderTrendOverlay(runs []history.Run) string {
	if len(runs) == 0 {
		return statusStyle.Render("No recorded runs (start with --history).")
	}
	var b strings.Builder
	if err := report.WriteTrendTable(&b, runs); err != nil {
		return statusStyle.Render(fmt.Sprintf("trend unavailable: %v", err))
	}
	return b.String()
}
