package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"settlement-server/internal/engine"
	"settlement-server/pkg/api"
	"settlement-server/pkg/logger"
	"settlement-server/pkg/utils"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между WebSocket и WorldService.
// Одна сессия - один вьюпорт браузера.
type Client struct {
	World     *engine.WorldService
	Conn      *websocket.Conn
	Send      chan api.ServerResponse
	SessionID string
}

func NewClient(world *engine.WorldService, conn *websocket.Conn) *Client {
	return &Client{
		World: world,
		Conn:  conn,
		Send:  make(chan api.ServerResponse, 64),
	}
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		c.World.Hub.Unregister(c.SessionID)
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Warn("failed to close websocket connection")
		}
		logger.Log.WithField("session_id", c.SessionID).Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. HANDSHAKE
	// Первая команда определяет сессию. Токен клиента (если был сохранен)
	// переживает переподключение, иначе генерируем новый.
	var first api.ClientCommand
	if err := c.Conn.ReadJSON(&first); err != nil {
		logger.Log.Warn("Handshake failed")
		return
	}

	c.SessionID = first.Token
	if c.SessionID == "" {
		c.SessionID = utils.GenerateID()
	}

	logger.Log.WithFields(logrus.Fields{
		"session_id": c.SessionID,
		"action":     first.Action,
	}).Info("Client connected")

	// 2. ПОДПИСКА НА ОБНОВЛЕНИЯ
	updates := c.World.Hub.Register(c.SessionID)

	// Пересылаем широковещательные обновления (перегенерация мира
	// другим клиентом) в writePump
	go forwardUpdates(updates, c.Send)

	// Обрабатываем команду рукопожатия как обычную (чаще всего INIT)
	c.dispatch(first)

	// 3. ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		var cmd api.ClientCommand
		if err := c.Conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Errorf("WS Error: %v", err)
			}
			break
		}
		c.dispatch(cmd)
	}
}

// forwardUpdates перекладывает сообщения из канала хаба в канал writePump
// и закрывает последний, когда хаб отписал сессию. Отправка неблокирующая:
// если writePump уже умер и Send заполнен, блокирующая отправка не дала бы
// close(updates) завершить эту горутину - по одной утечке на мертвую сессию.
func forwardUpdates(updates <-chan api.ServerResponse, send chan<- api.ServerResponse) {
	for msg := range updates {
		select {
		case send <- msg:
		default:
		}
	}
	close(send)
}

// dispatch выполняет команду и раскладывает ответы: личный - в свою
// сессию, широковещательный - всем остальным.
func (c *Client) dispatch(cmd api.ClientCommand) {
	cmd.Token = c.SessionID
	resp, broadcast := c.World.ProcessCommand(cmd)
	c.World.Hub.SendTo(c.SessionID, resp)
	if broadcast != nil {
		c.World.Hub.Broadcast(*broadcast)
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Warn("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
