package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client публикует уведомления в очередь RabbitMQ
// Доставка и шаблонизация принадлежат внешнему сервису уведомлений;
// клиент устойчив к сбоям брокера: любая ошибка возвращается наверх,
// где она логируется и не влияет на основной поток
type Client struct {
	url   string
	queue string
	log   Logger
}

// NewClient создает новый клиент сервиса уведомлений
func NewClient(url, queue string, log Logger) *Client {
	return &Client{
		url:   url,
		queue: queue,
		log:   log,
	}
}

// Send публикует уведомление типа templateType для клиента clientID
// Соединение устанавливается на каждую публикацию: уведомления редки
// относительно бронирований, а отсутствие долгоживущего соединения
// упрощает восстановление после рестарта брокера
func (c *Client) Send(ctx context.Context, clientID int64, templateType TemplateType, language string, params map[string]string) error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("%w: dial: %v", ErrPublish, err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("%w: open channel: %v", ErrPublish, err)
	}
	defer func() { _ = ch.Close() }()

	// Декларация идемпотентна; durable, чтобы сообщения переживали рестарт брокера
	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("%w: queue declare: %v", ErrPublish, err)
	}

	msg := Message{
		ClientID:     clientID,
		TemplateType: templateType,
		Language:     language,
		Params:       params,
		EnqueuedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: marshal message: %v", ErrPublish, err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", c.queue, false, false, pub); err != nil {
		return fmt.Errorf("%w: publish: %v", ErrPublish, err)
	}

	c.log.Info("Notification enqueued: client=%d, template=%s", clientID, templateType)
	return nil
}
