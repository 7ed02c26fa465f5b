package gridkit

import (
	tea "charm.land/bubbletea/v2"

	"gridkit/message"
)

// getPage gets a page of rows from the dataset
func (m Model) getPage(offset, size int) tea.Cmd {

	return func() tea.Msg {

		rows, err := m.Dataset.Page(m.ctx, offset, size)
		if err != nil {
			return message.ErrorMsg{Err: err}
		}

		return message.PageMsg{Offset: offset, Rows: rows}
	}
}
