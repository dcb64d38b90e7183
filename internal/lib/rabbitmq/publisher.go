package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// AppID значение поля app_id у публикуемых сообщений.
const AppID = "healthmate"

// Channel часть amqp.Channel, нужная для публикации.
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// PublishMessage сериализует message в JSON и публикует в exchange как
// persistent-сообщение. Тип сообщения совпадает с ключом маршрутизации.
func PublishMessage(ch Channel, exchange, routingKey string, message any) error {
	const op = "rabbitmq.PublishMessage"

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Type:         routingKey,
		AppId:        AppID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err = ch.Publish(exchange, routingKey, false, false, msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
