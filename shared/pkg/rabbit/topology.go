package rabbit

import amqp "github.com/rabbitmq/amqp091-go"

// DeclareTopic declares a durable topic exchange. Analytics consumers bind
// their own queues; the storefront only publishes.
func DeclareTopic(ch *amqp.Channel, exchange string) error {
	return ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil)
}
