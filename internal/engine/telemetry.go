package engine

import "shanzai-server/pkg/osc"

// notify передается планировщику AI для событий внутри прохода монстров.
func (s *GameService) notify(event string) {
	s.sendState(event)
}

// sendState шлет пакет адресованных датаграмм, описывающих текущее
// состояние: позиция и HP игрока, уровень, число монстров, имя события
// и последнее сообщение журнала. Каждое - отдельным сообщением.
func (s *GameService) sendState(event string) {
	g := s.State
	if g == nil || g.Player == nil {
		return
	}

	s.Telemetry.Send("/player", osc.Int(g.Player.X), osc.Int(g.Player.Y), osc.Int(g.Player.HP))
	s.Telemetry.Send("/level", osc.Int(g.Level))
	s.Telemetry.Send("/monsters", osc.Int(len(g.Monsters)))
	if event != "" {
		s.Telemetry.Send("/event", osc.String(event))
	}
	if msg, ok := g.LastMessage(); ok {
		s.Telemetry.Send("/message", osc.String(msg))
	}
}
