package engine

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"shanzai-server/internal/domain"
	"shanzai-server/pkg/api"
	"shanzai-server/pkg/osc"
)

// telemetryRecorder записывает закодированные датаграммы вместо отправки.
type telemetryRecorder struct {
	packets [][]byte
}

func (r *telemetryRecorder) Send(address string, args ...osc.Arg) {
	r.packets = append(r.packets, osc.Pack(address, args...))
}

func (r *telemetryRecorder) hasEvent(name string) bool {
	want := osc.Pack("/event", osc.String(name))
	for _, p := range r.packets {
		if bytes.Equal(p, want) {
			return true
		}
	}
	return false
}

// Helper: сервис с детерминированным зерном и рекордером телеметрии.
func newTestService(monsters, items int) (*GameService, *telemetryRecorder) {
	rec := &telemetryRecorder{}
	s := &GameService{
		Telemetry: rec,
		cfg: Config{
			Width:       12,
			Height:      12,
			NumMonsters: monsters,
			NumItems:    items,
		},
		rng: rand.New(rand.NewSource(42)),
	}
	s.reset()
	return s, rec
}

// Helper: заменяет сгенерированный уровень на предсказуемую открытую арену.
func openArena(s *GameService) {
	g := s.State
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if x == 0 || y == 0 || x == g.Width-1 || y == g.Height-1 {
				g.Tiles[y][x] = domain.TileWall
			} else {
				g.Tiles[y][x] = domain.TileFloor
			}
		}
	}
	g.Monsters = nil
	g.Items = nil
	g.Player.X, g.Player.Y = 4, 4
	g.Player.HP = domain.MaxPlayerHP
}

func TestNewService_FirstLevel(t *testing.T) {
	s, rec := newTestService(3, 2)
	g := s.State

	if g.Level != 1 {
		t.Errorf("Level = %d, want 1", g.Level)
	}
	if g.Player == nil || g.Player.HP != domain.MaxPlayerHP {
		t.Fatal("Player must start with full HP")
	}
	if len(g.Monsters) != 3 {
		t.Errorf("Expected 3 monsters on level 1 (no Nezha), got %d", len(g.Monsters))
	}
	if len(g.Messages) != 1 || g.Messages[0] != "Welcome to Tiny Shanzai Rogue." {
		t.Errorf("Unexpected first-level journal: %v", g.Messages)
	}
	if !rec.hasEvent("new_level") || !rec.hasEvent("game_start") {
		t.Error("Expected new_level and game_start telemetry events")
	}
}

func TestHandleMove_EdgeBump(t *testing.T) {
	s, rec := newTestService(0, 0)
	openArena(s)
	g := s.State
	g.Player.X, g.Player.Y = 0, 4 // на кромке (тайл там стена, но это не важно)

	before := g.MonsterTurnCounter
	s.handleMove(-1, 0)

	if g.MonsterTurnCounter != before {
		t.Error("Edge bump must not trigger the monster scheduler")
	}
	last, _ := g.LastMessage()
	if last != "You bump into the edge of the concrete grid." {
		t.Errorf("Unexpected message %q", last)
	}
	if !rec.hasEvent("bump_edge") {
		t.Error("Expected bump_edge event")
	}
}

func TestHandleMove_WallBump(t *testing.T) {
	s, rec := newTestService(0, 0)
	openArena(s)
	g := s.State
	g.Tiles[4][5] = domain.TileWall

	before := g.MonsterTurnCounter
	s.handleMove(1, 0)

	if g.Player.X != 4 || g.Player.Y != 4 {
		t.Error("Player must not move into a wall")
	}
	if g.MonsterTurnCounter != before {
		t.Error("Wall bump must not trigger the monster scheduler")
	}
	if !rec.hasEvent("bump_wall") {
		t.Error("Expected bump_wall event")
	}
}

func TestHandleMove_FloorRunsScheduler(t *testing.T) {
	s, rec := newTestService(0, 0)
	openArena(s)
	g := s.State

	s.handleMove(1, 0)

	if g.Player.X != 5 || g.Player.Y != 4 {
		t.Errorf("Player at (%d,%d), want (5,4)", g.Player.X, g.Player.Y)
	}
	if g.MonsterTurnCounter != 1 {
		t.Errorf("Scheduler counter = %d, want 1", g.MonsterTurnCounter)
	}
	if !rec.hasEvent("player_move") {
		t.Error("Expected player_move event")
	}
}

func TestHandleWait(t *testing.T) {
	s, rec := newTestService(0, 0)
	openArena(s)

	s.ProcessCommand(api.ClientCommand{Command: "wait"})

	if s.State.MonsterTurnCounter != 1 {
		t.Error("Wait must trigger the monster scheduler")
	}
	last, _ := s.State.LastMessage()
	if last != "You wait and feel the structure hum." {
		t.Errorf("Unexpected message %q", last)
	}
	if !rec.hasEvent("wait") {
		t.Error("Expected wait event")
	}
}

func TestProcessCommand_UnknownIgnored(t *testing.T) {
	s, rec := newTestService(0, 0)
	openArena(s)
	g := s.State

	msgs := len(g.Messages)
	packets := len(rec.packets)

	s.ProcessCommand(api.ClientCommand{Command: "dance"})

	if len(g.Messages) != msgs || g.MonsterTurnCounter != 0 || len(rec.packets) != packets {
		t.Error("Unknown command must not change state or emit telemetry")
	}
}

func TestAttack_DamagesMonster(t *testing.T) {
	s, rec := newTestService(0, 0)
	openArena(s)
	g := s.State

	goblin := &domain.Entity{X: 5, Y: 4, Char: "g", Name: "Goblin", HP: 100}
	g.Monsters = append(g.Monsters, goblin)

	s.handleMove(1, 0)

	if g.Player.X != 4 {
		t.Error("Attack must not move the player")
	}
	if goblin.HP >= 100 {
		t.Error("Monster HP must decrease")
	}
	// Урон без оружия на уровне 1: 1..4
	if dmg := 100 - goblin.HP; dmg < 1 || dmg > 4 {
		t.Errorf("Damage %d outside 1..4", dmg)
	}
	if g.MonsterTurnCounter != 1 {
		t.Error("Attack must trigger the monster scheduler")
	}
	if !rec.hasEvent("player_attack") {
		t.Error("Expected player_attack event")
	}
}

func TestAttack_NezhaPhaseTransition(t *testing.T) {
	s, rec := newTestService(0, 0)
	openArena(s)
	g := s.State

	nezha := &domain.Entity{X: 5, Y: 4, Char: "N", Name: domain.NezhaName, HP: 1}
	g.Monsters = append(g.Monsters, nezha)

	s.handleMove(1, 0)

	if g.NezhaPhase != 1 {
		t.Errorf("NezhaPhase = %d, want 1", g.NezhaPhase)
	}
	if !rec.hasEvent("nezha_phase_end") {
		t.Error("Expected nezha_phase_end event")
	}

	found := false
	for _, m := range g.Messages {
		if strings.Contains(m, "discards this concrete body") {
			found = true
		}
	}
	if !found {
		t.Error("Expected phase transition message")
	}
}

func TestAttack_NezhaPhaseCapsAtThree(t *testing.T) {
	s, _ := newTestService(0, 0)
	openArena(s)
	g := s.State
	g.NezhaPhase = 3

	nezha := &domain.Entity{X: 5, Y: 4, Char: "N", Name: domain.NezhaName, HP: 1}
	g.Monsters = append(g.Monsters, nezha)

	s.handleMove(1, 0)

	if g.NezhaPhase != 3 {
		t.Errorf("NezhaPhase = %d, want 3 (terminal)", g.NezhaPhase)
	}
}

func TestPickup_EquipStrongestOnly(t *testing.T) {
	s, rec := newTestService(0, 0)
	openArena(s)
	g := s.State

	// Оружие силой 1, 3, 2 по пути игрока.
	g.Items = []*domain.Item{
		{X: 5, Y: 4, Char: "/", Name: "Rusty Dagger", Kind: domain.ItemKindWeapon, Power: 1},
		{X: 6, Y: 4, Char: ")", Name: "War Axe", Kind: domain.ItemKindWeapon, Power: 3},
		{X: 7, Y: 4, Char: "/", Name: "Short Sword", Kind: domain.ItemKindWeapon, Power: 2},
	}

	s.handleMove(1, 0)
	if g.CurrentWeapon == nil || g.CurrentWeapon.Power != 1 {
		t.Fatal("First weapon should be equipped")
	}

	s.handleMove(1, 0)
	if g.CurrentWeapon.Power != 3 {
		t.Errorf("Equipped power = %d, want 3 after second pickup", g.CurrentWeapon.Power)
	}

	s.handleMove(1, 0)
	if g.CurrentWeapon.Power != 3 {
		t.Errorf("Equipped power = %d, want 3 after weaker third pickup", g.CurrentWeapon.Power)
	}

	if len(g.Inventory) != 3 {
		t.Errorf("Inventory size = %d, want 3", len(g.Inventory))
	}
	if g.ItemAt(5, 4) != nil || g.ItemAt(6, 4) != nil || g.ItemAt(7, 4) != nil {
		t.Error("Picked up items must leave the level")
	}
	if !rec.hasEvent("pickup_weapon") {
		t.Error("Expected pickup_weapon event")
	}
}

func TestPickup_PotionHealCap(t *testing.T) {
	s, rec := newTestService(0, 0)
	openArena(s)
	g := s.State

	// Полное здоровье: зелье выпито впустую.
	g.Items = []*domain.Item{
		{X: 5, Y: 4, Char: "!", Name: "Healing Potion", Kind: domain.ItemKindPotion, Power: 5},
	}
	s.handleMove(1, 0)

	if g.Player.HP != domain.MaxPlayerHP {
		t.Errorf("HP = %d, want %d (no overheal)", g.Player.HP, domain.MaxPlayerHP)
	}
	found := false
	for _, m := range g.Messages {
		if m == "You drink, but feel no different." {
			found = true
		}
	}
	if !found {
		t.Error("Expected neutral potion message at full HP")
	}

	// Раненый игрок: лечение ограничено максимумом.
	g.Player.HP = domain.MaxPlayerHP - 2
	g.Items = []*domain.Item{
		{X: 6, Y: 4, Char: "!", Name: "Healing Potion", Kind: domain.ItemKindPotion, Power: 5},
	}
	s.handleMove(1, 0)

	if g.Player.HP != domain.MaxPlayerHP {
		t.Errorf("HP = %d, want capped at %d", g.Player.HP, domain.MaxPlayerHP)
	}
	if !rec.hasEvent("pickup_potion") {
		t.Error("Expected pickup_potion event")
	}
}

func TestDescend_EndToEnd(t *testing.T) {
	s, rec := newTestService(2, 2)
	openArena(s)
	g := s.State

	// Инвентарь и HP должны пережить спуск.
	weapon := &domain.Item{Char: "/", Name: "Short Sword", Kind: domain.ItemKindWeapon, Power: 2}
	g.Inventory = []*domain.Item{weapon}
	g.CurrentWeapon = weapon
	g.Player.HP = 7

	oldGoblin := &domain.Entity{X: 9, Y: 9, Char: "g", Name: "Goblin", HP: 3}
	g.Monsters = []*domain.Entity{oldGoblin}
	g.Items = []*domain.Item{{X: 8, Y: 8, Char: "!", Name: "Healing Potion", Kind: domain.ItemKindPotion, Power: 5}}

	g.Tiles[4][5] = domain.TileStairsDown
	before := g.MonsterTurnCounter

	s.handleMove(1, 0)

	if g.Level != 2 {
		t.Fatalf("Level = %d, want 2", g.Level)
	}
	if g.MonsterTurnCounter != before {
		t.Error("Descending must not trigger the monster scheduler")
	}
	if g.Player.HP != 7 {
		t.Errorf("Player HP = %d, want 7 (carried over)", g.Player.HP)
	}
	if len(g.Inventory) != 1 || g.CurrentWeapon != weapon {
		t.Error("Inventory and equipped weapon must survive descent")
	}

	// Коллекции пересобраны: 2 гоблина + Нежа (уровень 2, фаза 0).
	if len(g.Monsters) != 3 {
		t.Fatalf("Expected 3 monsters on level 2, got %d", len(g.Monsters))
	}
	for _, m := range g.Monsters {
		if m == oldGoblin {
			t.Error("Old monster collection must be replaced")
		}
	}
	if len(g.Items) != 2 {
		t.Errorf("Expected 2 fresh items, got %d", len(g.Items))
	}

	// Игрок перенесен на проходимую клетку нового уровня.
	if !g.TileAt(g.Player.X, g.Player.Y).Walkable() {
		t.Error("Player start must be walkable")
	}

	if !rec.hasEvent("nezha_spawn") {
		t.Error("Expected nezha_spawn event on level 2")
	}

	found := false
	for _, m := range g.Messages {
		if m == "You descend to cavern level 2." {
			found = true
		}
	}
	if !found {
		t.Error("Expected descent message")
	}
}

func TestRestart_FreshState(t *testing.T) {
	s, rec := newTestService(1, 1)
	g := s.State
	g.Level = 5
	g.NezhaPhase = 2
	g.Inventory = []*domain.Item{{Name: "War Axe", Kind: domain.ItemKindWeapon, Power: 3}}
	g.Player.HP = 0

	s.Restart()

	fresh := s.State
	if fresh == g {
		t.Fatal("Restart must build a brand new state")
	}
	if fresh.Level != 1 || fresh.NezhaPhase != 0 || len(fresh.Inventory) != 0 {
		t.Error("Restarted game must reset level, boss phase and inventory")
	}
	if fresh.Player.HP != domain.MaxPlayerHP {
		t.Error("Restarted player must have full HP")
	}
	if !rec.hasEvent("game_start") {
		t.Error("Expected game_start event")
	}
}
