package network

import (
	"sync"

	"shanzai-server/pkg/api"
)

// Broadcaster занимается только рассылкой снимков состояния подписчикам
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: ID подписчика -> Личный канал
	subscribers map[string]chan *api.StateSnapshot
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan *api.StateSnapshot),
	}
}

// Register создает личный канал для подписчика (зрителя)
func (b *Broadcaster) Register(id string) chan *api.StateSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[id]; ok {
		close(old)
	}

	ch := make(chan *api.StateSnapshot, 100)
	b.subscribers[id] = ch
	return ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
}

// Broadcast отправляет снимок всем. Медленный подписчик пропускает кадр:
// отправка никогда не блокирует игровой ход.
func (b *Broadcaster) Broadcast(snap *api.StateSnapshot) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- snap:
		default:
		}
	}
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
