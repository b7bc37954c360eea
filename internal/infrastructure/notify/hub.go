package notify

import (
	"sync"

	"github.com/gofiber/contrib/websocket"

	"github.com/estoquepro/estoque-api/pkg/logger"
)

// Hub mantiene las conexiones websocket suscritas a alertas de stock y
// difunde mensajes a todas ellas.
type Hub struct {
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte

	clients map[*websocket.Conn]bool
	mu      sync.Mutex
	log     *logger.Logger
}

// NewHub construye el hub. Llamar Run en una goroutine antes de usarlo.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, 64),
		clients:    make(map[*websocket.Conn]bool),
		log:        log,
	}
}

// Run atiende registros, bajas y broadcasts hasta que el proceso termina.
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()
			h.log.Debug().Msg("cliente websocket conectado")

		case conn := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case message := <-h.Broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}
