package entity

// Command is one of Show, Hide, Reorder or Resize.
// Drag and button interactions both produce commands, applied by a single reducer.
type Command interface {
	isCommand()
}

func (Show) isCommand()    {}
func (Hide) isCommand()    {}
func (Reorder) isCommand() {}
func (Resize) isCommand()  {}

// Show makes a column visible.
// At indexes the sequence of visible, hideable columns; negative keeps the current position.
type Show struct {
	Id string
	At int
}

// Hide hides a column, keeping its position in order.
type Hide struct {
	Id string
}

// Reorder replaces the order with a permutation of all registered ids.
type Reorder struct {
	Ids []string
}

// Resize sets a column width, clamped to its bounds.
type Resize struct {
	Id    string
	Width int
}
