package notify

import (
	"encoding/json"
	"time"

	"github.com/estoquepro/estoque-api/internal/application/ledger"
	"github.com/estoquepro/estoque-api/internal/domain/entity"
	"github.com/estoquepro/estoque-api/internal/domain/stock"
	"github.com/estoquepro/estoque-api/pkg/logger"
)

// Ensure StockAlertNotifier implements ledger.AlertNotifier.
var _ ledger.AlertNotifier = (*StockAlertNotifier)(nil)

// StockAlertMessage payload difundido por websocket cuando un movimiento
// deja el stock en nivel crítico o bajo.
type StockAlertMessage struct {
	Event       string      `json:"event"`
	ProductID   string      `json:"productId"`
	ProductName string      `json:"productName"`
	Level       stock.Level `json:"level"`
	Quantity    int         `json:"quantity"`
	MinStock    int         `json:"minStock"`
	Message     string      `json:"message"`
	At          time.Time   `json:"at"`
}

type pendingAlert struct {
	check   stock.CheckResult
	product entity.Product
}

// StockAlertNotifier despacha alertas de stock al hub websocket de forma
// asíncrona. Best-effort: si la cola está llena la alerta se descarta con
// un warn, nunca se bloquea al llamador (el movimiento ya está confirmado).
type StockAlertNotifier struct {
	hub   *Hub
	queue chan pendingAlert
	log   *logger.Logger
}

// NewStockAlertNotifier construye el notifier y arranca su worker.
func NewStockAlertNotifier(hub *Hub, log *logger.Logger) *StockAlertNotifier {
	n := &StockAlertNotifier{
		hub:   hub,
		queue: make(chan pendingAlert, 128),
		log:   log,
	}
	go n.dispatch()
	return n
}

// Notify encola una alerta sin bloquear.
func (n *StockAlertNotifier) Notify(check stock.CheckResult, product entity.Product) {
	select {
	case n.queue <- pendingAlert{check: check, product: product}:
	default:
		n.log.Warn().
			Str("product_id", product.ID).
			Str("level", string(check.Level)).
			Msg("cola de alertas llena, alerta descartada")
	}
}

func (n *StockAlertNotifier) dispatch() {
	for alert := range n.queue {
		msg := StockAlertMessage{
			Event:       "stock_alert",
			ProductID:   alert.product.ID,
			ProductName: alert.product.Name,
			Level:       alert.check.Level,
			Quantity:    alert.check.Quantity,
			MinStock:    alert.check.MinStock,
			Message:     alert.check.Message,
			At:          time.Now(),
		}
		payload, err := json.Marshal(msg)
		if err != nil {
			n.log.Error().Err(err).Msg("serializar alerta de stock")
			continue
		}
		n.hub.Broadcast <- payload
		n.log.Info().
			Str("product_id", msg.ProductID).
			Str("level", string(msg.Level)).
			Int("quantity", msg.Quantity).
			Msg("alerta de stock difundida")
	}
}
