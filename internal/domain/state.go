package domain

// Game - единственный изменяемый корень состояния. Все компоненты движка
// работают со ссылками внутрь него; приватных копий данных сущностей нет.
// Мутируют его только обработчик хода и генератор уровней.
type Game struct {
	Width  int
	Height int
	Tiles  [][]Tile

	Player   *Entity
	Monsters []*Entity
	Items    []*Item

	// Messages - append-only журнал игровых сообщений.
	Messages []string

	Level int

	// Inventory - подобранное оружие в порядке подбора.
	// CurrentWeapon указывает на элемент инвентаря (или nil).
	Inventory     []*Item
	CurrentWeapon *Item

	// MonsterTurnCounter - монотонный счетчик вызовов планировщика AI.
	// Монстры ходят только на четных значениях (половинная скорость).
	MonsterTurnCounter int

	// NezhaPhase - накопленные победы над боссом, 0..3.
	NezhaPhase int
}

// NewGame создает пустое состояние с заданной сеткой. Тайлы, монстры и
// предметы заполняются генератором уровня.
func NewGame(width, height int) *Game {
	return &Game{
		Width:  width,
		Height: height,
		Level:  1,
	}
}

// InBounds проверяет, что точка лежит внутри сетки.
func (g *Game) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// TileAt возвращает клетку. Вне границ - стена.
func (g *Game) TileAt(x, y int) Tile {
	if !g.InBounds(x, y) {
		return TileWall
	}
	return g.Tiles[y][x]
}

// EntityAt возвращает игрока или живого монстра в клетке, либо nil.
func (g *Game) EntityAt(x, y int) *Entity {
	if g.Player != nil && g.Player.X == x && g.Player.Y == y {
		return g.Player
	}
	return g.MonsterAt(x, y)
}

// MonsterAt возвращает живого монстра в клетке, либо nil.
func (g *Game) MonsterAt(x, y int) *Entity {
	for _, m := range g.Monsters {
		if m.X == x && m.Y == y && m.Alive() {
			return m
		}
	}
	return nil
}

// ItemAt возвращает предмет, лежащий в клетке, либо nil.
func (g *Game) ItemAt(x, y int) *Item {
	for _, it := range g.Items {
		if it.X == x && it.Y == y {
			return it
		}
	}
	return nil
}

// IsWalkableForMonster проверяет клетку для шага монстра:
// в границах, пол или лестница, нет живого монстра, нет игрока.
func (g *Game) IsWalkableForMonster(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	if !g.Tiles[y][x].Walkable() {
		return false
	}
	if g.MonsterAt(x, y) != nil {
		return false
	}
	if g.Player != nil && g.Player.X == x && g.Player.Y == y {
		return false
	}
	return true
}

// RemoveItem убирает предмет с уровня (подбор).
func (g *Game) RemoveItem(target *Item) {
	for i, it := range g.Items {
		if it == target {
			g.Items = append(g.Items[:i], g.Items[i+1:]...)
			return
		}
	}
}

// RemoveDeadMonsters вычищает мертвых монстров после прохода AI.
func (g *Game) RemoveDeadMonsters() {
	alive := g.Monsters[:0]
	for _, m := range g.Monsters {
		if m.Alive() {
			alive = append(alive, m)
		}
	}
	g.Monsters = alive
}

// AddMessage дописывает сообщение в журнал.
func (g *Game) AddMessage(text string) {
	g.Messages = append(g.Messages, text)
}

// LastMessage возвращает последнее сообщение журнала.
func (g *Game) LastMessage() (string, bool) {
	if len(g.Messages) == 0 {
		return "", false
	}
	return g.Messages[len(g.Messages)-1], true
}

// GameOver - единственное видимое пользователю состояние отказа.
// Это данные, а не ошибка.
func (g *Game) GameOver() bool {
	return g.Player != nil && g.Player.HP <= 0
}
