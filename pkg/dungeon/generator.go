package dungeon

import (
	"math/rand"

	"shanzai-server/internal/domain"
)

// Params - входные параметры генерации одного уровня.
type Params struct {
	Width       int
	Height      int
	NumMonsters int
	NumItems    int
	Level       int
	NezhaPhase  int
}

// Result - содержимое свежесгенерированного уровня. Сообщения и телеметрия
// остаются на стороне движка: генератор чист от побочных эффектов.
type Result struct {
	Tiles        [][]domain.Tile
	PlayerStart  domain.Position
	Monsters     []*domain.Entity
	Items        []*domain.Item
	Stairs       domain.Position
	NezhaSpawned bool
}

// Generate создает новый уровень: вырезает пещеру случайным блужданием,
// расселяет монстров и босса, раскладывает предметы и ставит ровно одну
// лестницу вниз.
func Generate(p Params, rng *rand.Rand) *Result {
	res := &Result{
		Tiles: carve(p, rng),
	}

	// Позиция игрока выбирается первой и учитывается всеми
	// последующими проверками занятости.
	res.PlayerStart = res.findRandomFloor(p, rng)

	// Базовые монстры. HP растет с глубиной.
	hp := 3
	if p.Level > 1 {
		hp += p.Level - 1
	}
	for i := 0; i < p.NumMonsters; i++ {
		pos := res.findRandomFloor(p, rng)
		res.Monsters = append(res.Monsters, Goblin.Spawn(pos, hp))
	}

	// Босс: со второго уровня, пока не закрыты все три фазы.
	if p.Level >= 2 && p.NezhaPhase < 3 {
		pos := res.findRandomFloor(p, rng)
		res.Monsters = append(res.Monsters, Nezha.Spawn(pos, 8+p.NezhaPhase*5))
		res.NezhaSpawned = true
	}

	// Предметы: оружие с вероятностью 2/3, иначе зелье.
	for i := 0; i < p.NumItems; i++ {
		pos := res.findRandomFloor(p, rng)
		if rng.Intn(3) < 2 {
			tpl := Weapons[rng.Intn(len(Weapons))]
			res.Items = append(res.Items, tpl.Spawn(pos, p.Level))
		} else {
			res.Items = append(res.Items, SpawnPotion(pos, p.Level))
		}
	}

	// Ровно одна лестница вниз на свободной клетке пола.
	res.Stairs = res.findRandomFloor(p, rng)
	res.Tiles[res.Stairs.Y][res.Stairs.X] = domain.TileStairsDown

	return res
}

// carve вырезает связную кляксу пола "пьяным" блужданием от центра.
// Длина прогулки (w*h*4) выбрана с запасом: несвязный результат практически
// невозможен, явная проверка связности не выполняется.
func carve(p Params, rng *rand.Rand) [][]domain.Tile {
	tiles := make([][]domain.Tile, p.Height)
	for y := 0; y < p.Height; y++ {
		tiles[y] = make([]domain.Tile, p.Width) // TileWall - нулевое значение
	}

	directions := [4]domain.Position{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}

	x, y := p.Width/2, p.Height/2
	for i := 0; i < p.Width*p.Height*4; i++ {
		tiles[y][x] = domain.TileFloor
		d := directions[rng.Intn(4)]
		// Кромка карты остается сплошной стеной.
		x = clamp(x+d.X, 1, p.Width-2)
		y = clamp(y+d.Y, 1, p.Height-2)
	}

	return tiles
}

// findRandomFloor подбирает свободную клетку пола отбраковкой. Количество
// попыток ограничено; при исчерпании выполняется детерминированный скан -
// генерация гарантированно завершается даже на патологической карте.
func (r *Result) findRandomFloor(p Params, rng *rand.Rand) domain.Position {
	maxTries := p.Width * p.Height * 10
	for i := 0; i < maxTries; i++ {
		x := 1 + rng.Intn(p.Width-2)
		y := 1 + rng.Intn(p.Height-2)
		if r.eligible(x, y) {
			return domain.Position{X: x, Y: y}
		}
	}

	// Fallback: первая подходящая клетка в порядке обхода.
	for y := 1; y < p.Height-1; y++ {
		for x := 1; x < p.Width-1; x++ {
			if r.eligible(x, y) {
				return domain.Position{X: x, Y: y}
			}
		}
	}

	// Пол полностью занят. Центр гарантированно является полом
	// (стартовая клетка блуждания).
	return domain.Position{X: p.Width / 2, Y: p.Height / 2}
}

// eligible: клетка пола, не занятая игроком, монстром или предметом.
func (r *Result) eligible(x, y int) bool {
	if r.Tiles[y][x] != domain.TileFloor {
		return false
	}
	if r.PlayerStart.X == x && r.PlayerStart.Y == y {
		return false
	}
	for _, m := range r.Monsters {
		if m.X == x && m.Y == y {
			return false
		}
	}
	for _, it := range r.Items {
		if it.X == x && it.Y == y {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
