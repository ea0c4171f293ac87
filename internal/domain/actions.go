package domain

// ActionType - внутренний числовой идентификатор действия
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionMove
	ActionWait
	ActionRestart
)

// ParseCommand переводит внешнюю текстовую команду в действие и единичный
// вектор направления. Нераспознанная команда дает ActionUnknown и
// игнорируется движком без изменения состояния.
func ParseCommand(cmd string) (action ActionType, dx, dy int) {
	switch cmd {
	case "up":
		return ActionMove, 0, -1
	case "down":
		return ActionMove, 0, 1
	case "left":
		return ActionMove, -1, 0
	case "right":
		return ActionMove, 1, 0
	case "wait":
		return ActionWait, 0, 0
	case "restart":
		return ActionRestart, 0, 0
	default:
		return ActionUnknown, 0, 0
	}
}
