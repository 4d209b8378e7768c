// Package queue contains the background consumer that listens to the
// schedule.notify queue and forwards rendered messages to the team chat
// webhook.
package queue

import (
    "bytes"
    "encoding/json"
    "errors"
    "fmt"
    "net/http"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "go.uber.org/zap"

    "github.com/iliyamo/stream-shift-scheduler/internal/config"
    "github.com/iliyamo/stream-shift-scheduler/internal/week"
)

// Consumer drains notification events and dispatches them to the chat
// webhook. This is the single place messages are rendered and sent, so every
// trigger produces consistent output.
type Consumer struct {
    cfg    config.NotifyConfig
    log    *zap.Logger
    client *http.Client
}

// NewConsumer builds a consumer around the given notifier config.
func NewConsumer(cfg config.NotifyConfig, log *zap.Logger) *Consumer {
    return &Consumer{
        cfg:    cfg,
        log:    log,
        client: &http.Client{Timeout: 10 * time.Second},
    }
}

// Run connects to RabbitMQ, declares the notify queue (durable), and starts
// consuming messages. The function runs a reconnect loop with exponential
// backoff and never returns under normal operation; processing errors are
// logged and the offending message rejected so the server keeps operating.
func (cs *Consumer) Run() error {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(cs.cfg.AMQPURL)
        if err != nil {
            cs.log.Warn("notify-consumer: failed to dial broker",
                zap.Error(err), zap.Duration("retry_in", backoff))
            time.Sleep(backoff)
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        err = cs.consumeLoop(conn)
        // A channel-level failure can end the loop while the connection
        // is still open; close it so reconnect cycles never leak.
        _ = conn.Close()
        if err != nil {
            cs.log.Warn("notify-consumer: consume loop ended, reconnecting", zap.Error(err))
            time.Sleep(2 * time.Second)
            continue
        }
    }
}

func (cs *Consumer) consumeLoop(conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        cs.log.Warn("notify-consumer: set QoS failed", zap.Error(err))
    }

    _, err = ch.QueueDeclare(cs.cfg.Queue, true, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }

    msgs, err := ch.Consume(cs.cfg.Queue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for d := range msgs {
        if err := cs.handleMessage(d.Body); err != nil {
            cs.log.Error("notify-consumer: handle message failed", zap.Error(err))
            _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
            continue
        }
        _ = d.Ack(false)
    }
    return errors.New("deliveries channel closed")
}

func (cs *Consumer) handleMessage(body []byte) error {
    var ev NotifyEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    text := RenderMessage(ev)
    if text == "" {
        // Unknown event type; drop it rather than retry forever.
        cs.log.Warn("notify-consumer: no message for event", zap.String("type", string(ev.Type)))
        return nil
    }

    // Without a webhook configured we still surface the message in the logs
    // so local setups can see what would have been sent.
    if cs.cfg.WebhookURL == "" {
        cs.log.Info("notify-consumer: chat message (webhook not configured)", zap.String("text", text))
        return nil
    }
    return cs.postWebhook(text)
}

// RenderMessage turns an event into the chat text for its trigger. It returns
// an empty string for event types it does not know.
func RenderMessage(ev NotifyEvent) string {
    switch ev.Type {
    case EventRequestCreated:
        kind := "SHIFT SWAP"
        if ev.RequestType == "LEAVE" {
            kind = "DAY OFF"
        }
        swapInfo := ""
        if ev.RequestType == "SWAP" {
            target := ev.TargetUserName
            if target == "" {
                target = "N/A"
            }
            swapInfo = fmt.Sprintf("\nSwap with: %s", target)
        }
        day := week.DayName(ev.DayIndex)
        if day == "" {
            day = "unknown day"
        }
        return fmt.Sprintf("[NEW REQUEST]\nStaff: %s\nType: %s\nDay: %s\nReason: %s%s\nManagers, please review in the app.",
            ev.UserName, kind, day, ev.Reason, swapInfo)

    case EventAvailabilitySubmitted:
        phone := ev.NotifyPhone
        if phone == "" {
            phone = "none"
        }
        return fmt.Sprintf("[AVAILABILITY]\n%s has submitted their availability for the week.\n(Contact: %s)", ev.UserName, phone)

    case EventRequestResolved:
        verdict := "REJECTED"
        if ev.Status == "APPROVED" {
            verdict = "APPROVED"
        }
        return fmt.Sprintf("[REQUEST UPDATE]\nRequest from %s has been %s.", ev.UserName, verdict)
    }
    return ""
}

// chatMessage is the webhook payload shape.
type chatMessage struct {
    Text   string `json:"text"`
    ChatID string `json:"chat_id"`
}

func (cs *Consumer) postWebhook(text string) error {
    body, err := json.Marshal(chatMessage{Text: text, ChatID: cs.cfg.ChatID})
    if err != nil {
        return fmt.Errorf("marshal webhook payload: %w", err)
    }
    resp, err := cs.client.Post(cs.cfg.WebhookURL, "application/json", bytes.NewReader(body))
    if err != nil {
        return fmt.Errorf("post webhook: %w", err)
    }
    defer func() { _ = resp.Body.Close() }()
    if resp.StatusCode >= 300 {
        return fmt.Errorf("webhook responded %d", resp.StatusCode)
    }
    return nil
}
