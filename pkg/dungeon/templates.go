package dungeon

import "shanzai-server/internal/domain"

// MonsterTemplate определяет шаблон для создания монстра.
type MonsterTemplate struct {
	Char string
	Name string
}

// Spawn создает монстра из шаблона на заданной позиции.
func (t MonsterTemplate) Spawn(pos domain.Position, hp int) *domain.Entity {
	return &domain.Entity{
		X:    pos.X,
		Y:    pos.Y,
		Char: t.Char,
		Name: t.Name,
		HP:   hp,
	}
}

// --- МОНСТРЫ ---

var Goblin = MonsterTemplate{Char: "g", Name: "Goblin"}

// Nezha - рекуррентный босс. HP и урон растут с фазой.
var Nezha = MonsterTemplate{Char: "N", Name: domain.NezhaName}

// WeaponTemplate определяет шаблон оружия с базовой силой.
type WeaponTemplate struct {
	Char  string
	Name  string
	Power int
}

// Spawn создает экземпляр оружия; сила растет с глубиной уровня.
func (t WeaponTemplate) Spawn(pos domain.Position, level int) *domain.Item {
	power := t.Power
	if level > 1 {
		power += (level - 1) / 2
	}
	return &domain.Item{
		X:     pos.X,
		Y:     pos.Y,
		Char:  t.Char,
		Name:  t.Name,
		Kind:  domain.ItemKindWeapon,
		Power: power,
	}
}

// --- ОРУЖИЕ ---

var Weapons = []WeaponTemplate{
	{Char: "/", Name: "Rusty Dagger", Power: 1},
	{Char: "/", Name: "Short Sword", Power: 2},
	{Char: ")", Name: "War Axe", Power: 3},
	{Char: ")", Name: "Crystal Blade", Power: 4},
}

// SpawnPotion создает лечебное зелье; объем лечения растет с уровнем.
func SpawnPotion(pos domain.Position, level int) *domain.Item {
	return &domain.Item{
		X:     pos.X,
		Y:     pos.Y,
		Char:  "!",
		Name:  "Healing Potion",
		Kind:  domain.ItemKindPotion,
		Power: 4 + level,
	}
}
