package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"shanzai-server/pkg/api"
	"shanzai-server/pkg/logger"
	"shanzai-server/pkg/utils"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - зритель: получает поток снимков состояния, команд не шлет.
// Управление игрой идет через POST /command.
type Client struct {
	Server *Server
	Conn   *websocket.Conn
	Send   chan *api.StateSnapshot
	ID     string
}

func NewClient(srv *Server, conn *websocket.Conn) *Client {
	return &Client{
		Server: srv,
		Conn:   conn,
		Send:   make(chan *api.StateSnapshot, 256),
		ID:     utils.GenerateID(),
	}
}

// readPump держит соединение открытым и отвечает на pong.
// Любое входящее сообщение игнорируется; ошибка чтения завершает сессию.
func (c *Client) readPump() {
	defer func() {
		c.Server.Hub.Unregister(c.ID)
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Warn("failed to close websocket connection")
		}
		logger.Log.WithField("viewer_id", c.ID).Info("Viewer disconnected")
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

	// Подписка на обновления
	updates := c.Server.Hub.Register(c.ID)
	go func() {
		for snap := range updates {
			c.Send <- snap
		}
		close(c.Send)
	}()

	logger.Log.WithField("viewer_id", c.ID).Info("Viewer connected")

	// Первый кадр сразу при подключении
	c.Server.mu.Lock()
	snap := c.Server.Engine.BuildSnapshot()
	c.Server.mu.Unlock()
	c.Send <- snap

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Errorf("WS Error: %v", err)
			}
			break
		}
	}
}

// writePump отправляет снимки клиенту + Ping
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
		case snap, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(snap); err != nil {
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
