package systems

import (
	"fmt"
	"math/rand"

	"shanzai-server/internal/domain"
	"shanzai-server/pkg/logger"
)

// Вероятность жадного шага к игроку вместо случайного.
const (
	ChaseBiasNezha  = 0.9
	ChaseBiasCommon = 0.75
)

// Варианты случайного шага: четыре стороны и "стоять на месте".
var wanderSteps = [5]domain.Position{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {}}

// MonstersTakeTurns продвигает всех монстров на один шаг.
// Монстры ходят в два раза реже игрока: счетчик вызовов инкрементируется
// всегда, а действия выполняются только на четных значениях.
//
// notify вызывается для событий, требующих немедленной телеметрии
// (player_hit / player_die); может быть nil.
func MonstersTakeTurns(g *domain.Game, rng *rand.Rand, notify func(event string)) {
	if g.Player == nil {
		return
	}

	g.MonsterTurnCounter++
	if g.MonsterTurnCounter%2 == 1 {
		return // половинная скорость
	}

	for _, m := range g.Monsters {
		if !m.Alive() {
			continue
		}

		bias := ChaseBiasCommon
		if m.IsNezha() {
			bias = ChaseBiasNezha
		}

		var dx, dy int
		if rng.Float64() < bias {
			// Жадное преследование: шаг по знаку дельты на каждой оси
			// независимо, диагонали возможны.
			dx = sign(g.Player.X - m.X)
			dy = sign(g.Player.Y - m.Y)
		} else {
			step := wanderSteps[rng.Intn(len(wanderSteps))]
			dx, dy = step.X, step.Y
		}

		nx, ny := m.X+dx, m.Y+dy

		if nx == g.Player.X && ny == g.Player.Y {
			dmg := MonsterAttackDamage(g, m, rng)
			g.Player.HP -= dmg
			g.AddMessage(fmt.Sprintf("The %s hits you for %d damage!", m.Name, dmg))

			if g.Player.HP <= 0 {
				g.AddMessage("You fall between slabs of concrete. Game over.")
				logger.Log.WithField("killer", m.Name).Info("Player died")
				if notify != nil {
					notify("player_die")
				}
			} else if notify != nil {
				notify("player_hit")
			}
			continue
		}

		if g.IsWalkableForMonster(nx, ny) {
			m.X, m.Y = nx, ny
		}
		// Иначе монстр остается на месте.
	}

	g.RemoveDeadMonsters()
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
