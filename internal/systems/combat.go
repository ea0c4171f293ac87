package systems

import (
	"math/rand"

	"shanzai-server/internal/domain"
	"shanzai-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// LevelBonus - общий бонус урона от глубины уровня: floor(max(0, level-1)/2).
func LevelBonus(level int) int {
	if level <= 1 {
		return 0
	}
	return (level - 1) / 2
}

// PlayerAttackDamage бросает урон игрока:
// uniform(1,4) + сила экипированного оружия + бонус уровня.
func PlayerAttackDamage(g *domain.Game, rng *rand.Rand) int {
	base := rng.Intn(4) + 1

	weapon := 0
	if g.CurrentWeapon != nil {
		weapon = g.CurrentWeapon.Power
	}

	total := base + weapon + LevelBonus(g.Level)

	logger.Log.WithFields(logrus.Fields{
		"component":    "combat_system",
		"base_damage":  base,
		"weapon_bonus": weapon,
		"level_bonus":  LevelBonus(g.Level),
		"total":        total,
	}).Debug("Player attack roll")

	return total
}

// MonsterAttackDamage бросает урон монстра:
// uniform(1,3) + бонус уровня; босс добавляет 1 + фаза.
func MonsterAttackDamage(g *domain.Game, m *domain.Entity, rng *rand.Rand) int {
	total := rng.Intn(3) + 1 + LevelBonus(g.Level)
	if m.IsNezha() {
		total += 1 + g.NezhaPhase
	}

	logger.Log.WithFields(logrus.Fields{
		"component":     "combat_system",
		"attacker_name": m.Name,
		"nezha_phase":   g.NezhaPhase,
		"total":         total,
	}).Debug("Monster attack roll")

	return total
}
