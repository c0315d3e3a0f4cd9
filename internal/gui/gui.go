package gui

// Inventory is a real slot surface owned by the host.
type Inventory interface {
	Clear()
	SetSlot(index int, s Stack) error
	Slot(index int) Stack
	Size() int
}

// User is a host session that owns a personal inventory and can be shown
// another inventory.
type User interface {
	Id() string
	Inventory() Inventory
	OpenInventory(inv Inventory) error
}

// Kind names the screen shape the host should create.
type Kind int

const (
	KindChest Kind = iota
	KindEnderChest
)

func (k Kind) String() string {
	switch k {
	case KindChest:
		return "chest"
	case KindEnderChest:
		return "ender_chest"
	default:
		return "unknown"
	}
}

// InventoryFactory creates the real inventory backing a gui.
type InventoryFactory interface {
	CreateInventory(kind Kind, title string, size int) Inventory
}

// CloseFunc is called when a user closes a gui.
type CloseFunc func(u User) error

// Gui is a screen that can be shown to users and receives their input.
type Gui interface {
	Title() string
	Show(u User) error
	Click(ev *ClickEvent) (bool, error)
	HandleClose(u User) error
	Update() error
	IsPlayerInventoryUsed() bool
}
