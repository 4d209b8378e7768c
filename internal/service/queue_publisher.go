// Package notify publishes notification events to RabbitMQ.
// Errors are logged and returned to allow callers to ignore failures without
// interrupting the main request flow.
package notify

import (
    "context"
    "encoding/json"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "go.uber.org/zap"

    "github.com/iliyamo/stream-shift-scheduler/internal/config"
    "github.com/iliyamo/stream-shift-scheduler/internal/queue"
)

// Publisher pushes NotifyEvents onto the notify queue. Publishing is
// best-effort: a broker outage must never fail the originating request, so
// callers are expected to log-and-continue on error.
type Publisher struct {
    cfg config.NotifyConfig
    log *zap.Logger
}

// NewPublisher builds a publisher bound to the given notifier config.
func NewPublisher(cfg config.NotifyConfig, log *zap.Logger) *Publisher {
    return &Publisher{cfg: cfg, log: log}
}

// dialTimeout bounds the broker handshake. Publishing happens inside
// request handlers, so a black-holed broker must give up well before the
// handler's own deadline instead of stalling staff-facing endpoints.
const dialTimeout = 3 * time.Second

// Publish sends one event to the notify queue. The queue is declared durable
// and messages are marked persistent so notifications survive broker
// restarts. A fresh connection per publish keeps the handler path free of
// shared channel state; these events are rare enough that the overhead does
// not matter.
func (p *Publisher) Publish(ctx context.Context, event queue.NotifyEvent) error {
    conn, err := amqp.DialConfig(p.cfg.AMQPURL, amqp.Config{
        Dial: amqp.DefaultDial(dialTimeout),
    })
    if err != nil {
        p.log.Warn("notify: dial failed", zap.Error(err))
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        p.log.Warn("notify: channel open failed", zap.Error(err))
        return err
    }
    defer func() { _ = ch.Close() }()

    // Ensure the queue exists (idempotent).
    if _, err := ch.QueueDeclare(
        p.cfg.Queue, // name
        true,        // durable
        false,       // autoDelete
        false,       // exclusive
        false,       // noWait
        nil,         // args
    ); err != nil {
        p.log.Warn("notify: queue declare failed", zap.Error(err))
        return err
    }

    body, err := json.Marshal(event)
    if err != nil {
        p.log.Warn("notify: marshal event failed", zap.Error(err))
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent, // store on disk
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }

    if err := ch.PublishWithContext(ctx,
        "",          // default exchange
        p.cfg.Queue, // routing key = queue name
        false,       // mandatory
        false,       // immediate
        pub,
    ); err != nil {
        p.log.Warn("notify: publish failed", zap.Error(err))
        return err
    }

    return nil
}
