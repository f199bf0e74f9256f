package service

import (
	"encoding/json"

	"github.com/streadway/amqp"
)

// QueueView carries view events from the detail endpoint to the consumer
// process, which persists views+1 and the watch history entry.
const QueueView = "clipstream.view.queue"

// ViewMessage is the payload on QueueView.
type ViewMessage struct {
	UserID  uint64 `json:"user_id"`
	VideoID uint64 `json:"video_id"`
}

type ViewPublisher interface {
	PublishView(msg ViewMessage) error
}

type amqpViewPublisher struct {
	conn *amqp.Connection
}

// NewViewPublisher declares the queue up front so the consumer and the server
// can start in any order.
func NewViewPublisher(conn *amqp.Connection) (ViewPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	defer ch.Close()
	_, err = ch.QueueDeclare(
		QueueView,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, err
	}
	return &amqpViewPublisher{conn: conn}, nil
}

// PublishView opens a short-lived channel per message; channels are cheap and
// this keeps publishes independent of each other.
func (p *amqpViewPublisher) PublishView(msg ViewMessage) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return ch.Publish(
		"",        // default exchange
		QueueView, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		})
}
