package osc

import (
	"net"
	"strconv"
)

// Client отправляет датаграммы по UDP в режиме fire-and-forget.
// Телеметрия никогда не влияет на корректность игры: любая ошибка
// (нет приемника, сеть недоступна) молча проглатывается.
type Client struct {
	conn net.Conn
}

// NewClient открывает UDP "соединение" до приемника телеметрии.
// При ошибке возвращается клиент-пустышка: все Send становятся no-op.
func NewClient(host string, port int) *Client {
	conn, err := net.Dial("udp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return &Client{}
	}
	return &Client{conn: conn}
}

// Send кодирует и отправляет одно сообщение. Ошибки передачи игнорируются.
func (c *Client) Send(address string, args ...Arg) {
	if c == nil || c.conn == nil {
		return
	}
	_, _ = c.conn.Write(Pack(address, args...))
}

// Close освобождает сокет. Безопасен для клиента-пустышки.
func (c *Client) Close() {
	if c == nil || c.conn == nil {
		return
	}
	_ = c.conn.Close()
}
