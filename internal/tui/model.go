package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/arcade-cli/internal/app"
	"github.com/glabrego/arcade-cli/internal/catalog"
	tuiactions "github.com/glabrego/arcade-cli/internal/tui/actions"
	tuiplatform "github.com/glabrego/arcade-cli/internal/tui/platform"
	tuistate "github.com/glabrego/arcade-cli/internal/tui/state"
	tuitheme "github.com/glabrego/arcade-cli/internal/tui/theme"
	tuiview "github.com/glabrego/arcade-cli/internal/tui/view"
)

const statusTTL = 4 * time.Second

// Controller is the catalog state the model renders from.
type Controller interface {
	Load(ctx context.Context) (app.Snapshot, error)
	SetQuery(query string) app.Snapshot
	SetActiveCategories(selectors []string) app.Snapshot
	ToggleBookmark(ctx context.Context, title string) (app.Snapshot, error)
	Snapshot() app.Snapshot
}

type Model struct {
	controller   Controller
	theme        tuitheme.Theme
	snap         app.Snapshot
	search       textinput.Model
	spinner      spinner.Model
	fetchTimeout time.Duration

	cursor         int
	selectedTitle  string
	categoryCursor int
	inDetail       bool
	detailTop      int
	showHelp       bool
	width          int
	height         int

	loading  bool
	status   string
	statusID int
	warning  string

	lastLoadDuration time.Duration
	openURLFn        func(string) error
	copyURLFn        func(string) error
}

func NewModel(controller Controller, fetchTimeout time.Duration) Model {
	search := textinput.New()
	search.Prompt = "search: "
	search.Placeholder = "type / to search titles"
	search.CharLimit = 120

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := Model{
		controller:   controller,
		theme:        tuitheme.Default(),
		search:       search,
		spinner:      spin,
		fetchTimeout: fetchTimeout,
		openURLFn:    tuiplatform.OpenURLInBrowser,
		copyURLFn:    tuiplatform.CopyURLToClipboard,
	}
	if controller != nil {
		m.snap = controller.Snapshot()
		m.loading = true
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.controller == nil {
		return nil
	}
	return tea.Batch(
		tuiactions.LoadCmd(m.controller, m.fetchTimeout, "init"),
		m.spinner.Tick,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Width = max(10, msg.Width-len(m.search.Prompt)-2)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tuiactions.LoadSuccessMsg:
		m.lastLoadDuration = msg.Duration
		m.warning = ""
		m.applySnapshot(m.controller.Snapshot())
		m.loading = m.snap.IsLoading()
		return m, nil
	case tuiactions.LoadErrorMsg:
		m.lastLoadDuration = msg.Duration
		m.warning = msg.Err.Error()
		m.applySnapshot(m.controller.Snapshot())
		m.loading = m.snap.IsLoading()
		return m, nil
	case tuiactions.LoadSupersededMsg:
		return m, nil
	case tuiactions.OpenURLSuccessMsg:
		return m.setStatus(msg.Status)
	case tuiactions.OpenURLErrorMsg:
		m.warning = msg.Err.Error()
		return m, nil
	case tuiactions.ClearStatusMsg:
		if msg.ID == m.statusID {
			m.status = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.search.Focused() {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	}

	if m.showHelp {
		switch msg.String() {
		case "esc":
			m.showHelp = false
		case "q":
			return m, tea.Quit
		}
		return m, nil
	}

	if m.inDetail {
		return m.handleDetailKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "g":
		m.moveCursor(-len(m.snap.Items))
	case "G":
		m.moveCursor(len(m.snap.Items))
	case "pgup", "ctrl+b":
		m.moveCursor(-tuistate.PageStep(m.height, m.status != ""))
	case "pgdown", "ctrl+f":
		m.moveCursor(tuistate.PageStep(m.height, m.status != ""))
	case "/":
		return m, m.search.Focus()
	case "ctrl+l":
		m.search.SetValue("")
		m.applySnapshot(m.controller.SetQuery(""))
	case "tab":
		m.categoryCursor = tuistate.WrapCursor(m.categoryCursor, 1, len(m.categoryBar()))
	case "shift+tab":
		m.categoryCursor = tuistate.WrapCursor(m.categoryCursor, -1, len(m.categoryBar()))
	case " ":
		return m.selectCategory(false)
	case "x":
		return m.selectCategory(true)
	case "b":
		return m.toggleBookmarkCurrent()
	case "enter":
		if _, ok := m.currentItem(); ok {
			m.inDetail = true
			m.detailTop = 0
		}
	case "r":
		return m.reload()
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter", "esc", "tab":
		m.search.Blur()
		return m, nil
	case "ctrl+l":
		m.search.SetValue("")
		m.applySnapshot(m.controller.SetQuery(""))
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		m.applySnapshot(m.controller.SetQuery(after))
	}
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.inDetail = false
		m.detailTop = 0
	case "up", "k":
		if m.detailTop > 0 {
			m.detailTop--
		}
	case "down", "j":
		if m.detailTop < tuiview.DetailMaxTop(len(m.detailLines()), m.detailBodyHeight()) {
			m.detailTop++
		}
	case "[":
		m.moveCursor(-1)
		m.detailTop = 0
	case "]":
		m.moveCursor(1)
		m.detailTop = 0
	case "b":
		return m.toggleBookmarkCurrent()
	case "o":
		item, ok := m.currentItem()
		if !ok {
			return m, nil
		}
		link, _ := item.Download()
		return m.openLink(link)
	case "p":
		item, ok := m.currentItem()
		if !ok {
			return m, nil
		}
		preview, _ := item.Preview()
		return m.openLink(preview)
	case "y":
		item, ok := m.currentItem()
		if !ok {
			return m, nil
		}
		link, _ := item.Download()
		valid, err := tuiplatform.ValidateLink(link)
		if err != nil {
			m.warning = err.Error()
			return m, nil
		}
		return m, tuiactions.CopyURLCmd(valid, m.copyURLFn)
	}
	return m, nil
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	if m.controller == nil {
		return m, nil
	}
	wasLoading := m.loading
	m.loading = true
	m.status = ""
	cmds := []tea.Cmd{tuiactions.LoadCmd(m.controller, m.fetchTimeout, "manual")}
	if !wasLoading {
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) selectCategory(toggle bool) (tea.Model, tea.Cmd) {
	bar := m.categoryBar()
	if len(bar) == 0 {
		return m, nil
	}
	m.categoryCursor = tuistate.ClampCursor(m.categoryCursor, len(bar))
	selector := bar[m.categoryCursor]

	next := []string{selector}
	if toggle {
		next = tuistate.ToggleSelector(m.snap.Selectors, selector)
	}
	m.applySnapshot(m.controller.SetActiveCategories(next))
	return m, nil
}

func (m Model) toggleBookmarkCurrent() (tea.Model, tea.Cmd) {
	item, ok := m.currentItem()
	if !ok {
		return m, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	snap, err := m.controller.ToggleBookmark(ctx, item.Title)
	m.applySnapshot(snap)
	if err != nil {
		m.warning = fmt.Sprintf("bookmark kept for this session only: %v", err)
	}
	if len(m.snap.Items) == 0 {
		m.inDetail = false
	}

	status := "Removed bookmark: " + item.Title
	if snap.IsBookmarked(item.Title) {
		status = "Bookmarked: " + item.Title
	}
	return m.setStatus(status)
}

func (m Model) openLink(raw string) (tea.Model, tea.Cmd) {
	valid, err := tuiplatform.ValidateLink(raw)
	if err != nil {
		m.warning = err.Error()
		return m, nil
	}
	return m, tuiactions.OpenURLCmd(valid, m.openURLFn, m.copyURLFn)
}

func (m Model) setStatus(status string) (tea.Model, tea.Cmd) {
	m.statusID++
	m.status = status
	return m, tuiactions.ClearStatusCmd(m.statusID, statusTTL)
}

// applySnapshot swaps in a new snapshot and keeps the cursor on the same
// title when it is still visible.
func (m *Model) applySnapshot(snap app.Snapshot) {
	m.snap = snap
	if idx := tuistate.IndexByTitle(snap.Items, m.selectedTitle); idx >= 0 && m.selectedTitle != "" {
		m.cursor = idx
	} else {
		m.cursor = tuistate.ClampCursor(m.cursor, len(snap.Items))
	}
	m.categoryCursor = tuistate.ClampCursor(m.categoryCursor, len(m.categoryBar()))
	m.rememberSelection()
}

func (m *Model) moveCursor(delta int) {
	m.cursor = tuistate.ClampCursor(m.cursor+delta, len(m.snap.Items))
	m.rememberSelection()
}

func (m *Model) rememberSelection() {
	if item, ok := m.currentItem(); ok {
		m.selectedTitle = item.Title
	}
}

func (m Model) currentItem() (catalog.Item, bool) {
	if len(m.snap.Items) == 0 || m.cursor < 0 || m.cursor >= len(m.snap.Items) {
		return catalog.Item{}, false
	}
	return m.snap.Items[m.cursor], true
}

func (m Model) categoryBar() []string {
	return tuistate.CategoryBar(m.snap.Categories)
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Arcade"))
	b.WriteString("\n")
	b.WriteString(tuiview.Toolbar(m.inDetail, m.search.Focused()))
	b.WriteString("\n\n")

	switch {
	case m.showHelp:
		b.WriteString(m.theme.Section.Render("Help (? to close)"))
		b.WriteString("\n")
		b.WriteString(strings.Join(tuiview.HelpLines(), "\n"))
		b.WriteString("\n")
	case m.inDetail:
		b.WriteString(m.detailView())
		b.WriteString("\n")
	default:
		b.WriteString(tuiview.RenderCategoryBar(m.categoryBar(), m.snap.Selectors, m.categoryCursor, !m.search.Focused(), m.theme))
		b.WriteString("\n")
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
		b.WriteString(m.listView())
	}

	b.WriteString("\n")
	b.WriteString(m.messagePanel())
	b.WriteString("\n")
	b.WriteString(tuiview.Footer(m.snap.Query, m.snap.Selectors, len(m.snap.Items), m.snap.Total, m.snap.Bookmarks.Len(), m.theme))
	b.WriteString("\n")
	return b.String()
}

func (m Model) listView() string {
	items := m.snap.Items
	if len(items) == 0 {
		switch {
		case m.loading:
			return m.spinner.View() + " Loading games...\n"
		case m.snap.State == app.StateFailed:
			return m.theme.Empty.Render("Failed to load games. Please try again later.") + "\n"
		default:
			return m.theme.Empty.Render("No games found.") + "\n"
		}
	}

	var b strings.Builder
	if m.loading {
		b.WriteString(m.spinner.View() + " Reloading...\n")
	}
	start, end := tuistate.CenteredWindow(len(items), m.cursor, m.listHeight())
	for i := start; i < end; i++ {
		b.WriteString(tuiview.RenderItemLine(tuiview.ItemLineParams{
			Item:       items[i],
			Bookmarked: m.snap.IsBookmarked(items[i].Title),
			Position:   i,
			Active:     i == m.cursor,
			Width:      m.contentWidth(),
		}, m.theme))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) detailView() string {
	lines := m.detailLines()
	if len(lines) == 0 {
		return "No game selected.\n"
	}
	body := tuiview.RenderDetailLines(lines, m.detailTop, m.detailBodyHeight())
	return m.theme.Overlay.Render(body)
}

func (m Model) detailLines() []string {
	item, ok := m.currentItem()
	if !ok {
		return nil
	}
	return tuiview.DetailLines(item, m.snap.IsBookmarked(item.Title), m.contentWidth()-4, tuiview.WrapText)
}

func (m Model) messagePanel() string {
	state := "idle"
	switch {
	case m.loading:
		state = "loading"
	case m.snap.State == app.StateFailed:
		state = "failed"
	}
	warning := m.warning
	if warning == "" && m.snap.LastError != nil {
		warning = m.snap.LastError.Error()
	}
	return tuiview.Message(state, m.status, warning, m.theme)
}

func (m Model) contentWidth() int {
	if m.width > 0 {
		return m.width - 1
	}
	return 100
}

func (m Model) listHeight() int {
	if m.height <= 0 {
		return 0
	}
	if h := m.height - 10; h > 3 {
		return h
	}
	return 3
}

func (m Model) detailBodyHeight() int {
	if m.height > 0 {
		if h := m.height - 9; h > 3 {
			return h
		}
	}
	return 16
}
