package rabbitmq

import (
	"fmt"
	"log"
	"time"

	amqp "github.com/streadway/amqp"
)

// checkoutQueue is the durable queue carrying checkout lifecycle events.
const checkoutQueue = "checkout_events"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient creates a new RabbitMQ client. It connects to RabbitMQ, opens a
// channel, and declares the checkout events queue upfront.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close() // Close connection if channel creation fails
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		checkoutQueue, // name
		true,          // durable (persists messages across broker restarts)
		false,         // delete when unused
		false,         // exclusive (only one connection can use it)
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", checkoutQueue, err)
	}

	log.Printf("RabbitMQ client connected and %s declared.", checkoutQueue)

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Publish sends an event body to the checkout events queue. The routing key
// names the event kind (e.g. "checkout.initiated") and travels in the
// message type header.
func (c *Client) Publish(routingKey string, body []byte) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	err := c.channel.Publish(
		"",            // exchange: default exchange
		checkoutQueue, // routing key: the queue name
		false,         // mandatory: if true, returns message if it cannot be routed
		false,         // immediate: if true, returns message if it cannot be delivered to any consumer
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         routingKey,
			Body:         body,
			DeliveryMode: amqp.Persistent, // Make message persistent
			Timestamp:    time.Now(),
		})

	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	log.Printf(" [x] Sent checkout event %s: %s", routingKey, body)
	return nil
}

// ConsumeCheckoutEvents starts delivering checkout events to messageHandler.
// Messages are acknowledged when the handler returns nil and negatively
// acknowledged (with requeue) otherwise. The call blocks until the channel
// is closed.
func (c *Client) ConsumeCheckoutEvents(messageHandler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	queue, err := c.channel.QueueDeclare(
		checkoutQueue, // name
		true,          // durable
		false,         // delete when unused
		false,         // exclusive
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue for consuming: %w", err)
	}

	msgs, err := c.channel.Consume(
		queue.Name, // queue
		"",         // consumer tag: unique identifier for the consumer
		false,      // auto-ack: set to false to manually acknowledge messages
		false,      // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	for msg := range msgs {
		if handlerErr := messageHandler(msg); handlerErr != nil {
			log.Printf("Checkout event handler failed (tag %d): %v", msg.DeliveryTag, handlerErr)
			if nackErr := msg.Nack(false, true); nackErr != nil {
				log.Printf("Failed to nack message (tag %d): %v", msg.DeliveryTag, nackErr)
			}
			continue
		}
		if ackErr := msg.Ack(false); ackErr != nil {
			log.Printf("Failed to ack message (tag %d): %v", msg.DeliveryTag, ackErr)
		}
	}

	return nil
}
