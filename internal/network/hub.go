package network

import (
	"sync"

	"settlement-server/pkg/api"
)

// Broadcaster занимается только рассылкой ответов подписанным сессиям.
// WS-клиент регистрирует свою сессию и получает личный канал; команды,
// меняющие мир целиком (SET_PARAMS, PRESET), рассылаются всем -
// остальные клиенты должны перерисовать свои видимые области.
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: ID сессии -> личный канал
	subscribers map[string]chan api.ServerResponse
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerResponse),
	}
}

// Register создает личный канал для сессии.
func (b *Broadcaster) Register(sessionID string) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Переподключение с тем же ID: старый канал закрываем
	if old, ok := b.subscribers[sessionID]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, 64)
	b.subscribers[sessionID] = ch
	return ch
}

// Unregister удаляет подписчика и закрывает его канал.
func (b *Broadcaster) Unregister(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[sessionID]; ok {
		close(ch)
		delete(b.subscribers, sessionID)
	}
}

// SendTo отправляет ответ конкретной сессии (unicast).
// Полный канал не блокирует отправителя: сообщение теряется,
// клиент все равно запросит свежий вьюпорт следующим жестом.
func (b *Broadcaster) SendTo(sessionID string, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[sessionID]; ok {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Broadcast отправляет ответ всем сессиям.
func (b *Broadcaster) Broadcast(msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}

// SubscriberCount возвращает количество активных сессий.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
