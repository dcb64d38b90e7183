// Package events публикует доменные события HealthMate в RabbitMQ.
// Публикация не влияет на результат запроса: ошибки только логируются.
package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/healthmate/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/healthmate/internal/lib/sl"
)

// Routing keys событий.
const (
	ReportCreated = "report.created"
	ReportDeleted = "report.deleted"
)

// ReportEvent тело событий об отчётах.
type ReportEvent struct {
	ReportID   string    `json:"report_id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title,omitempty"`
	MimeType   string    `json:"mime_type,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher публикует событие с ключом routingKey.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, event any)
}

// AMQP публикует события в exchange. amqp.Channel не потокобезопасен,
// поэтому публикация идёт под мьютексом.
type AMQP struct {
	log      *slog.Logger
	conn     *amqp.Connection
	mu       sync.Mutex
	ch       rabbitmq.Channel
	closer   func() error
	exchange string
}

// NewAMQP подключается к брокеру и объявляет exchange.
func NewAMQP(log *slog.Logger, url, exchange string, retries int, delay time.Duration) (*AMQP, error) {
	conn, err := rabbitmq.Connect(url, retries, delay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, exchange)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &AMQP{log: log, conn: conn, ch: ch, closer: ch.Close, exchange: exchange}, nil
}

// Publish отправляет событие. Ошибка пишется в лог.
func (p *AMQP) Publish(_ context.Context, routingKey string, event any) {
	p.mu.Lock()
	err := rabbitmq.PublishMessage(p.ch, p.exchange, routingKey, event)
	p.mu.Unlock()

	if err != nil {
		p.log.Warn("failed to publish event", slog.String("routing_key", routingKey), sl.Err(err))
		return
	}
	p.log.Debug("event published", slog.String("routing_key", routingKey))
}

// Close закрывает канал и соединение.
func (p *AMQP) Close() error {
	if p.closer != nil {
		_ = p.closer()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Noop ничего не публикует. Используется, когда RabbitMQ выключен.
type Noop struct{}

// Publish ничего не делает.
func (Noop) Publish(context.Context, string, any) {}
