package core

// Action represents a semantic action, abstracted from physical key presses
// and mouse events.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // Up arrow, W - move cursor up
	ActionDown             // Down arrow, S - move cursor down
	ActionLeft             // Left arrow, A - move cursor left
	ActionRight            // Right arrow, D - move cursor right
	ActionSelect           // Space, Enter - pick the cell under the cursor
	ActionHints            // H - toggle the hint overlay
	ActionCrosshair        // X - toggle the crosshair
	ActionSave             // Ctrl+S - save the round
	ActionLoad             // Ctrl+L - load the saved round
	ActionRetry            // R - restart the current round or level
	ActionNext             // N - next challenge level
	ActionRecords          // Tab - show challenge records
	ActionBack             // B, Escape - back to menu
	ActionQuit             // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSelect:
		return "Select"
	case ActionHints:
		return "Hints"
	case ActionCrosshair:
		return "Crosshair"
	case ActionSave:
		return "Save"
	case ActionLoad:
		return "Load"
	case ActionRetry:
		return "Retry"
	case ActionNext:
		return "Next"
	case ActionRecords:
		return "Records"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Delta returns the cursor movement for a direction action.
func (a Action) Delta() (dx, dy int) {
	switch a {
	case ActionUp:
		return 0, -1
	case ActionDown:
		return 0, 1
	case ActionLeft:
		return -1, 0
	case ActionRight:
		return 1, 0
	}
	return 0, 0
}
