package engine

import (
	"shanzai-server/pkg/api"
)

// Сколько последних сообщений журнала попадает в снимок.
const snapshotMessages = 10

// BuildSnapshot создает внешний read-only снимок всей игры.
func (s *GameService) BuildSnapshot() *api.StateSnapshot {
	g := s.State

	tiles := make([]string, g.Height)
	for y := 0; y < g.Height; y++ {
		row := make([]byte, g.Width)
		for x := 0; x < g.Width; x++ {
			row[x] = g.Tiles[y][x].Glyph()
		}
		tiles[y] = string(row)
	}

	monsters := make([]api.MonsterView, 0, len(g.Monsters))
	for _, m := range g.Monsters {
		if !m.Alive() {
			continue
		}
		monsters = append(monsters, api.MonsterView{
			X: m.X, Y: m.Y, Char: m.Char, Name: m.Name, HP: m.HP,
		})
	}

	items := make([]api.ItemView, 0, len(g.Items))
	for _, it := range g.Items {
		items = append(items, api.ItemView{
			X: it.X, Y: it.Y, Char: it.Char, Name: it.Name, Kind: it.Kind, Power: it.Power,
		})
	}

	messages := g.Messages
	if len(messages) > snapshotMessages {
		messages = messages[len(messages)-snapshotMessages:]
	}
	// Копия, чтобы снимок не делил память с журналом.
	messagesCopy := make([]string, len(messages))
	copy(messagesCopy, messages)

	var weapon *api.WeaponView
	if g.CurrentWeapon != nil {
		weapon = &api.WeaponView{Name: g.CurrentWeapon.Name, Power: g.CurrentWeapon.Power}
	}

	inventory := make([]api.InventoryItemView, 0, len(g.Inventory))
	for _, it := range g.Inventory {
		inventory = append(inventory, api.InventoryItemView{
			Name: it.Name, Kind: it.Kind, Power: it.Power,
		})
	}

	return &api.StateSnapshot{
		Tiles: tiles,
		Player: api.PlayerView{
			X: g.Player.X, Y: g.Player.Y, Char: g.Player.Char, HP: g.Player.HP,
		},
		Monsters:  monsters,
		Items:     items,
		Messages:  messagesCopy,
		GameOver:  g.GameOver(),
		Level:     g.Level,
		Weapon:    weapon,
		Inventory: inventory,
	}
}
