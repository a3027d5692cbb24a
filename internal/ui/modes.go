package ui

// ScreenModeType represents different screen modes
type ScreenModeType int

const (
	ModeList ScreenModeType = iota
	ModeJumpItem
	ModeJumpIndex
	ModeHelp
)

func (m ScreenModeType) String() string {
	switch m {
	case ModeList:
		return "list"
	case ModeJumpItem:
		return "jump-item"
	case ModeJumpIndex:
		return "jump-line"
	case ModeHelp:
		return "help"
	}
	return "unknown"
}

// prompt returns the input prompt for modes that read a query
func (m ScreenModeType) prompt() string {
	switch m {
	case ModeJumpItem:
		return "/"
	case ModeJumpIndex:
		return ":"
	}
	return ""
}

// placeholder returns the input placeholder for modes that read a query
func (m ScreenModeType) placeholder() string {
	switch m {
	case ModeJumpItem:
		return "line key or text"
	case ModeJumpIndex:
		return "line number"
	}
	return ""
}
