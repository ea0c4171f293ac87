package domain

// Категории предметов
const (
	ItemKindWeapon = "weapon"
	ItemKindPotion = "potion"
)

// Item - предмет на полу или в инвентаре.
// Power - бонус урона для оружия, объем лечения для зелья.
type Item struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Char  string `json:"char"`
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Power int    `json:"power"`
}
