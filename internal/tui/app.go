package tui

import tea "github.com/charmbracelet/bubbletea"

// App is the top-level Bubble Tea model that routes between pages.
type App struct {
	pages      map[string]Page
	order      []string
	activePage string
	width      int
	height     int
}

// NewApp creates a new App with the given pages. The first page is the default.
func NewApp(pages ...Page) *App {
	pageMap := make(map[string]Page, len(pages))
	order := make([]string, 0, len(pages))
	for _, p := range pages {
		pageMap[p.ID()] = p
		order = append(order, p.ID())
	}
	a := &App{pages: pageMap, order: order}
	if len(order) > 0 {
		a.activePage = order[0]
	}
	return a
}

// ActivePage returns the id of the page currently shown.
func (a *App) ActivePage() string { return a.activePage }

func (a *App) Init() tea.Cmd {
	if p, ok := a.pages[a.activePage]; ok {
		return p.Init()
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
	case tea.KeyMsg, tea.MouseMsg:
		return a.routeActive(msg)
	}

	// Everything else (ticks, content revisions, resizes) reaches every page
	// so hidden pages keep their live state.
	var cmds []tea.Cmd
	var nav *PageNav
	for _, id := range a.order {
		cmd, n := a.pages[id].Update(msg)
		cmds = append(cmds, cmd)
		if id == a.activePage && n != nil {
			nav = n
		}
	}
	return a, tea.Batch(append(cmds, a.navigate(nav))...)
}

func (a *App) routeActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	p, ok := a.pages[a.activePage]
	if !ok {
		return a, nil
	}
	cmd, nav := p.Update(msg)
	return a, tea.Batch(cmd, a.navigate(nav))
}

func (a *App) navigate(nav *PageNav) tea.Cmd {
	if nav == nil {
		return nil
	}
	if _, exists := a.pages[nav.PageID]; !exists || nav.PageID == a.activePage {
		return nil
	}
	a.activePage = nav.PageID
	return a.pages[a.activePage].Init()
}

func (a *App) View() string {
	if p, ok := a.pages[a.activePage]; ok {
		return p.View(a.width, a.height)
	}
	return "No active page"
}
