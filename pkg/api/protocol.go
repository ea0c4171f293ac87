package api

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента.
// Command: up / down / left / right / wait / restart.
type ClientCommand struct {
	Command string `json:"command"`
}

// --- СЕРВЕР -> КЛИЕНТ ---

// StateSnapshot это полный read-only "снимок" игры для внешнего клиента.
// Возвращается на каждый запрос состояния и после каждой команды.
type StateSnapshot struct {
	// Tiles - карта построчно, по одному глифу на клетку (#, ., >).
	Tiles []string `json:"tiles"`

	Player PlayerView `json:"player"`

	// Monsters содержит только живых монстров.
	Monsters []MonsterView `json:"monsters"`

	// Items - предметы, лежащие на полу.
	Items []ItemView `json:"items"`

	// Messages - последние 10 записей игрового журнала.
	Messages []string `json:"messages"`

	// GameOver true, когда HP игрока <= 0. Это данные, а не ошибка:
	// клиент сам решает, когда перезапустить игру.
	GameOver bool `json:"game_over"`

	Level int `json:"level"`

	// Weapon - экипированное оружие; null, если рука пуста.
	Weapon *WeaponView `json:"weapon"`

	// Inventory - все подобранное оружие в порядке подбора.
	Inventory []InventoryItemView `json:"inventory"`
}

// PlayerView это DTO игрока.
type PlayerView struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Char string `json:"char"`
	HP   int    `json:"hp"`
}

// MonsterView это DTO монстра.
type MonsterView struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Char string `json:"char"`
	Name string `json:"name"`
	HP   int    `json:"hp"`
}

// ItemView это DTO предмета на полу.
type ItemView struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Char  string `json:"char"`
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Power int    `json:"power"`
}

// WeaponView это DTO экипированного оружия.
type WeaponView struct {
	Name  string `json:"name"`
	Power int    `json:"power"`
}

// InventoryItemView это DTO позиции инвентаря.
type InventoryItemView struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Power int    `json:"power"`
}
