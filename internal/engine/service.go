package engine

import (
	"fmt"
	"math/rand"

	"shanzai-server/internal/domain"
	"shanzai-server/internal/systems"
	"shanzai-server/pkg/api"
	"shanzai-server/pkg/dungeon"
	"shanzai-server/pkg/logger"
	"shanzai-server/pkg/osc"
)

// Telemetry - канал телеметрии, от которого зависит движок.
// Единственная I/O граница ядра: отправка не блокирует и не возвращает
// ошибок, симуляция ведет себя одинаково с приемником и без него.
type Telemetry interface {
	Send(address string, args ...osc.Arg)
}

// GameService владеет состоянием игры и выполняет ходы.
// Ядро однопоточное и синхронное: каждое действие разрешается полностью
// до возврата управления вызывающему.
type GameService struct {
	State     *domain.Game
	Telemetry Telemetry

	cfg Config
	rng *rand.Rand
}

// NewService создает игру: генерирует первый уровень и отправляет
// стартовый снимок телеметрии.
func NewService(cfg Config) *GameService {
	s := &GameService{
		Telemetry: osc.NewClient(cfg.OSCHost, cfg.OSCPort),
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
	}
	s.reset()
	return s
}

// reset строит свежее состояние: уровень 1, фаза босса 0, пустой инвентарь.
func (s *GameService) reset() {
	s.State = domain.NewGame(s.cfg.Width, s.cfg.Height)
	s.newLevel(true)
	s.sendState("game_start")
}

// Restart отбрасывает текущее состояние и начинает новую игру.
// Вызывается внешним слоем: сам обработчик хода перезапуска не знает.
func (s *GameService) Restart() {
	logger.Log.WithField("level", s.State.Level).Info("Game restarted")
	s.reset()
}

// ProcessCommand применяет одну внешнюю команду к состоянию.
// Нераспознанный ввод игнорируется без изменения состояния и без ошибки.
func (s *GameService) ProcessCommand(cmd api.ClientCommand) {
	action, dx, dy := domain.ParseCommand(cmd.Command)

	switch action {
	case domain.ActionMove:
		s.handleMove(dx, dy)
	case domain.ActionWait:
		s.handleWait()
	default:
		logger.Log.WithField("command", cmd.Command).Debug("Ignored command")
	}
}

// handleMove разрешает ход игрока в приоритетном порядке:
// край карты -> атака -> лестница -> пол -> стена.
func (s *GameService) handleMove(dx, dy int) {
	g := s.State
	nx, ny := g.Player.X+dx, g.Player.Y+dy

	if !g.InBounds(nx, ny) {
		g.AddMessage("You bump into the edge of the concrete grid.")
		s.sendState("bump_edge")
		return
	}

	if target := g.MonsterAt(nx, ny); target != nil {
		s.attack(target)
		return
	}

	switch g.TileAt(nx, ny) {
	case domain.TileStairsDown:
		g.AddMessage("You step onto the stairwell and descend.")
		// Спуск не дает монстрам хода: уровень пересобирается целиком.
		s.newLevel(false)

	case domain.TileFloor:
		g.Player.X, g.Player.Y = nx, ny
		s.checkPickup()
		systems.MonstersTakeTurns(g, s.rng, s.notify)
		s.sendState("player_move")

	default:
		g.AddMessage("Your shoulder hits raw concrete.")
		s.sendState("bump_wall")
	}
}

// attack бьет монстра в целевой клетке и ведет машину фаз босса.
func (s *GameService) attack(target *domain.Entity) {
	g := s.State

	dmg := systems.PlayerAttackDamage(g, s.rng)
	target.HP -= dmg
	g.AddMessage(fmt.Sprintf("You hit the %s for %d damage!", target.Name, dmg))

	if target.HP <= 0 {
		if target.IsNezha() {
			g.AddMessage("Nezha discards this concrete body. The pattern sinks deeper.")
			// Переход фазы 0->1->2->3; фаза 3 терминальна.
			if g.NezhaPhase < 3 {
				g.NezhaPhase++
			}
			logger.Log.WithField("nezha_phase", g.NezhaPhase).Info("Nezha phase ended")
			s.Telemetry.Send("/event", osc.String("nezha_phase_end"))
		} else {
			g.AddMessage(fmt.Sprintf("The %s dies.", target.Name))
		}
	}

	systems.MonstersTakeTurns(g, s.rng, s.notify)
	s.sendState("player_attack")
}

// handleWait пропускает ход игрока; мир при этом живет.
func (s *GameService) handleWait() {
	g := s.State
	g.AddMessage("You wait and feel the structure hum.")
	systems.MonstersTakeTurns(g, s.rng, s.notify)
	s.sendState("wait")
}

// checkPickup подбирает предмет под игроком: оружие уходит в инвентарь
// с автоэкипировкой, зелье выпивается на месте.
func (s *GameService) checkPickup() {
	g := s.State

	item := g.ItemAt(g.Player.X, g.Player.Y)
	if item == nil {
		return
	}
	g.RemoveItem(item)

	switch item.Kind {
	case domain.ItemKindWeapon:
		g.Inventory = append(g.Inventory, item)
		g.AddMessage(fmt.Sprintf("You pick up a %s.", item.Name))
		s.autoEquip(item)
		s.sendState("pickup_weapon")

	case domain.ItemKindPotion:
		healed := min(domain.MaxPlayerHP-g.Player.HP, item.Power)
		if healed > 0 {
			g.Player.HP += healed
			g.AddMessage(fmt.Sprintf("Concrete dust washes from your lungs. (+%d HP)", healed))
		} else {
			g.AddMessage("You drink, but feel no different.")
		}
		s.sendState("pickup_potion")
	}
}

// autoEquip берет оружие в руку, только если оно строго сильнее текущего.
func (s *GameService) autoEquip(weapon *domain.Item) {
	g := s.State
	if g.CurrentWeapon != nil && weapon.Power <= g.CurrentWeapon.Power {
		return
	}
	g.CurrentWeapon = weapon
	g.AddMessage(fmt.Sprintf("You wield the %s.", weapon.Name))
}

// newLevel пересобирает уровень: тайлы, монстры и предметы заменяются
// целиком, игрок переносится (на первом уровне - создается).
func (s *GameService) newLevel(first bool) {
	g := s.State

	if !first {
		g.Level++
		g.AddMessage(fmt.Sprintf("You descend to cavern level %d.", g.Level))
	}

	res := dungeon.Generate(dungeon.Params{
		Width:       g.Width,
		Height:      g.Height,
		NumMonsters: s.cfg.NumMonsters,
		NumItems:    s.cfg.NumItems,
		Level:       g.Level,
		NezhaPhase:  g.NezhaPhase,
	}, s.rng)

	g.Tiles = res.Tiles
	g.Monsters = res.Monsters
	g.Items = res.Items

	if first || g.Player == nil {
		g.Player = &domain.Entity{
			X:    res.PlayerStart.X,
			Y:    res.PlayerStart.Y,
			Char: "@",
			Name: "Player",
			HP:   domain.MaxPlayerHP,
		}
	} else {
		// HP и инвентарь переживают спуск, позиция сбрасывается.
		g.Player.X = res.PlayerStart.X
		g.Player.Y = res.PlayerStart.Y
	}

	if res.NezhaSpawned {
		g.AddMessage(fmt.Sprintf("NEZHA PROTOCOL phase %d detected in this cavern.", g.NezhaPhase+1))
		s.Telemetry.Send("/event", osc.String("nezha_spawn"))
	}

	if first {
		g.Messages = []string{"Welcome to Tiny Shanzai Rogue."}
	} else {
		g.AddMessage("Concrete corridors shift below...")
	}

	logger.Log.WithField("level", g.Level).Info("Level generated")
	s.sendState("new_level")
}
