package domain

// Position - точка на тайловой сетке.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Tile - вид клетки карты.
type Tile uint8

const (
	TileWall Tile = iota
	TileFloor
	TileStairsDown
)

// Walkable сообщает, можно ли стоять на клетке (пол или лестница).
func (t Tile) Walkable() bool {
	return t == TileFloor || t == TileStairsDown
}

// Glyph возвращает символ клетки для снимка состояния.
func (t Tile) Glyph() byte {
	switch t {
	case TileFloor:
		return '.'
	case TileStairsDown:
		return '>'
	default:
		return '#'
	}
}
