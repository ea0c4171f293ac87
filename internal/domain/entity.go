package domain

// Максимум HP игрока. Зелья никогда не лечат выше этого значения.
const MaxPlayerHP = 10

// NezhaName - имя рекуррентного босса. Сущность с этим именем получает
// усиленное преследование и масштабирование от фазы.
const NezhaName = "Nezha"

// Entity - пассивный носитель данных: позиция, глиф, имя и текущие HP.
// Сущность с HP <= 0 считается мертвой: она исключается из
// пространственных запросов и вычищается после каждого прохода AI.
type Entity struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Char string `json:"char"`
	Name string `json:"name"`
	HP   int    `json:"hp"`
}

// Alive сообщает, жива ли сущность.
func (e *Entity) Alive() bool {
	return e.HP > 0
}

// IsNezha сообщает, является ли сущность боссом.
func (e *Entity) IsNezha() bool {
	return e.Name == NezhaName
}
