package gridkit

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	nt "gridkit/entity"
	"gridkit/message"
	"gridkit/render"
	"gridkit/table"
)

const (
	footerHeight = 2
	// DoubleClick is the longest gap between two clicks on a handle that resets its width.
	DoubleClick = 400 * time.Millisecond
)

// Model is the bubbletea model driving one table instance.
type Model struct {
	Instance    *Instance
	Dataset     Dataset
	logger      nt.Logger
	ctx         context.Context
	errorString string
	now         func() time.Time

	offset    int
	count     int
	framing   bool
	cursor    string
	dragPanel settingsPanel

	lastClick   time.Time
	lastClickId string

	Width  int
	Height int
}

// NewModel creates a new bt model over a mounted instance.
func NewModel(ctx context.Context, inst *Instance, ds Dataset, lgr nt.Logger) Model {

	return Model{
		Instance: inst,
		Dataset:  ds,
		logger:   lgr,
		ctx:      ctx,
		now:      time.Now,
	}
}

func (m Model) Init() tea.Cmd {
	return message.GetPageCmd(0, m.Instance.Limit())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {

	switch msg := msg.(type) {

	case message.PageMsg:
		m.offset = msg.Offset
		m.count = len(msg.Rows)
		m.Instance.SetRows(msg.Rows)
		return m, nil

	case message.GetPageMsg:
		m.Instance.SetLoading(true)
		return m, m.getPage(msg.Offset, msg.Size)

	case message.ErrorMsg:
		m.logger.Error(m.ctx, "error msg", msg.Err)
		m.errorString = msg.Err.Error()
		m.Instance.SetLoading(false)
		return m, nil

	case message.FrameMsg:
		m.Instance.Frame()
		if _, ok := m.Instance.Resizing(); ok {
			return m, message.FrameCmd()
		}
		m.framing = false
		return m, nil

	case tea.KeyPressMsg:
		if m.errorString != "" {
			m.errorString = ""
		}
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.Instance.Phase() {
		case SettingsOpen, Reordering:
			return m.settingsKey(msg.String())
		case Resizing:
			if msg.String() == "esc" {
				m.Instance.AbortResize(m.ctx)
			}
			return m, nil
		}
		return m.tableKey(msg.String())

	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		if mouse.Button != tea.MouseLeft {
			return m, nil
		}
		if m.settingsOpen() {
			return m.settingsClick(mouse.X, mouse.Y)
		}
		return m.headerClick(mouse.X, mouse.Y)

	case tea.MouseMotionMsg:
		mouse := msg.Mouse()
		switch m.Instance.Phase() {
		case Resizing:
			m.Instance.ResizeMove(mouse.X * table.CellPixels)
		case Reordering:
			part, pt := m.dragPanel.partition(mouse.X, mouse.Y)
			m.Instance.DragOver(part, pt, m.dragPanel.siblings())
		}
		return m, nil

	case tea.MouseReleaseMsg:
		switch m.Instance.Phase() {
		case Resizing:
			m.Instance.EndResize(m.ctx)
		case Reordering:
			m.Instance.Drop(m.ctx)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil
	}

	return m, nil
}

func (m Model) View() tea.View {
	if m.Width == 0 {
		return tea.NewView("Loading...")
	}

	resizing, _ := m.Instance.Resizing()
	screenContent := table.Render(m.plan(), resizing)
	screenLayer := lipgloss.NewLayer("screen", screenContent)

	footerContent := RenderFooter(m.offset, m.count, m.Instance.Phase(), m.Dataset.Name(), m.Width)
	if m.errorString != "" {
		footerContent = m.errorString
	}
	footerLayer := lipgloss.NewLayer("footer", footerContent).Y(m.Height - footerHeight)

	canvas := lipgloss.NewCanvas(m.Width, m.Height)
	canvas.Compose(screenLayer)
	if m.settingsOpen() {
		dragging, _ := m.Instance.Settings().Dragging()
		modal := newSettingsPanel(m.Instance.Settings()).render(m.cursor, dragging)
		canvas.Compose(lipgloss.NewLayer("settings", modal))
	}
	canvas.Compose(footerLayer)

	view := tea.NewView(canvas)
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	return view
}

// unexported

func (m Model) plan() render.Plan {
	return m.Instance.Plan(m.Width * table.CellPixels)
}

func (m Model) settingsOpen() bool {

	phase := m.Instance.Phase()
	return phase == SettingsOpen || phase == Reordering
}

func (m Model) tableKey(key string) (tea.Model, tea.Cmd) {

	limit := m.Instance.Limit()

	switch key {
	case "q", "esc":
		return m, tea.Quit

	case "s":
		err := m.Instance.OpenSettings()
		if err != nil {
			return m, message.ErrorCmd(err)
		}
		m.cursor = ""
		if items := newSettingsPanel(m.Instance.Settings()).selectable(); len(items) > 0 {
			m.cursor = items[0].id
		}

	case "r":
		_, err := m.Instance.Reset(m.ctx)
		if err != nil {
			return m, message.ErrorCmd(err)
		}

	case "n", "pgdown":
		if m.count == limit {
			return m, message.GetPageCmd(m.offset+limit, limit)
		}

	case "p", "pgup":
		if m.offset > 0 {
			return m, message.GetPageCmd(max(m.offset-limit, 0), limit)
		}
	}

	return m, nil
}

func (m Model) settingsKey(key string) (tea.Model, tea.Cmd) {

	mdl := m.Instance.Settings()

	switch key {
	case "enter", "s":
		m.Instance.SaveSettings(m.ctx)

	case "esc":
		if m.Instance.Phase() == Reordering {
			m.Instance.CancelDrag()
			break
		}
		m.Instance.CancelSettings(m.ctx)

	case "up", "k":
		m.cursor = m.step(-1)

	case "down", "j":
		m.cursor = m.step(1)

	case "h":
		mdl.MoveToHidden(m.ctx, m.cursor)

	case "v", "l":
		mdl.MoveToVisible(m.ctx, m.cursor)

	case "K":
		if idx := visibleIndex(mdl.Visible(), m.cursor); idx > 0 {
			mdl.MoveTo(m.ctx, m.cursor, idx-1)
		}

	case "J":
		visible := mdl.Visible()
		if idx := visibleIndex(visible, m.cursor); idx >= 0 && idx < len(visible)-1 {
			mdl.MoveTo(m.ctx, m.cursor, idx+1)
		}
	}

	return m, nil
}

// step moves the cursor by delta among the selectable items.
func (m Model) step(delta int) string {

	items := newSettingsPanel(m.Instance.Settings()).selectable()
	if len(items) == 0 {
		return ""
	}

	idx := 0
	for i, item := range items {
		if item.id == m.cursor {
			idx = i + delta
			break
		}
	}
	idx = min(max(idx, 0), len(items)-1)
	return items[idx].id
}

func (m Model) settingsClick(x, y int) (tea.Model, tea.Cmd) {

	pnl := newSettingsPanel(m.Instance.Settings())
	item, ok := pnl.itemAt(y)
	if !ok {
		return m, nil
	}

	m.cursor = item.id
	err := m.Instance.StartDrag(item.id)
	if err != nil {
		m.logger.Error(m.ctx, "failed to start drag", err, "column", item.id)
		return m, nil
	}
	m.dragPanel = pnl
	return m, nil
}

func (m Model) headerClick(x, y int) (tea.Model, tea.Cmd) {

	if y >= table.HeaderHeight {
		return m, nil
	}

	id, ok := table.HandleAt(m.plan(), x)
	if !ok {
		return m, nil
	}

	now := m.now()
	if id == m.lastClickId && now.Sub(m.lastClick) < DoubleClick {
		m.lastClickId = ""
		_, err := m.Instance.ResetWidth(m.ctx, id)
		if err != nil {
			return m, message.ErrorCmd(err)
		}
		return m, nil
	}
	m.lastClick = now
	m.lastClickId = id

	err := m.Instance.BeginResize(id, x*table.CellPixels)
	if err != nil {
		return m, message.ErrorCmd(err)
	}

	if m.framing {
		return m, nil
	}
	m.framing = true
	return m, message.FrameCmd()
}

func visibleIndex(cols []nt.Column, id string) int {

	for i, col := range cols {
		if col.Id == id {
			return i
		}
	}
	return -1
}
