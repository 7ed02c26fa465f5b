package message

import (
	"time"

	nt "gridkit/entity"
)

// ErrorMsg contains an error
type ErrorMsg struct {
	Err error
}

// GetPageMsg signals to load a page of rows
type GetPageMsg struct {
	Offset int
	Size   int
}

// PageMsg contains a page of rows
type PageMsg struct {
	Offset int
	Rows   []nt.Row
}

// FrameMsg marks an animation frame, when pending pointer movement is applied
type FrameMsg struct {
	At time.Time
}
