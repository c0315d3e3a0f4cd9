package gui

// Side identifies which physical inventory a click landed in.
type Side int

const (
	SideTop Side = iota
	SideBottom
	SideOutside
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	default:
		return "outside"
	}
}

// ClickEvent carries a single click through the pane tree. Pane and Item are
// filled in by the pane that handles it.
type ClickEvent struct {
	RawSlot int
	Side    Side
	User    User
	Gui     Gui

	Pane Pane
	Item *GuiItem
}
