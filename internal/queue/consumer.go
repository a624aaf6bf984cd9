package queue

import (
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// StartKitchenConsumer connects to RabbitMQ, declares the
// order.events queue (durable), and starts consuming messages.  Each
// event is appended to logs/kitchen.log in a single-line,
// human-friendly format so kitchen staff have a paper trail of what
// was ordered and when.  The function runs a reconnect loop and never
// returns under normal operation; processing errors are logged and
// the offending message rejected so the service keeps running.
func StartKitchenConsumer() error {
    url := brokerURL()

    backoff := time.Second
    for {
        conn, err := amqp.Dial(url)
        if err != nil {
            log.Printf("kitchen-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
            time.Sleep(backoff)
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        if err := consumeLoop(conn); err != nil {
            log.Printf("kitchen-consumer: consume loop ended: %v; reconnecting", err)
            time.Sleep(2 * time.Second)
            continue
        }
    }
}

func consumeLoop(conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Printf("kitchen-consumer: set QoS failed: %v", err)
    }

    _, err = ch.QueueDeclare(orderQueueName, true, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }

    msgs, err := ch.Consume(orderQueueName, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for d := range msgs {
        if err := handleMessage(d.Body); err != nil {
            log.Printf("kitchen-consumer: handle message failed: %v", err)
            _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
            continue
        }
        _ = d.Ack(false)
    }
    return errors.New("deliveries channel closed")
}

func handleMessage(body []byte) error {
    var ev OrderEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    // Ensure logs directory exists
    if err := os.MkdirAll("logs", 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    fpath := filepath.Join("logs", "kitchen.log")
    f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    var line string
    switch ev.Type {
    case EventOrderPlaced:
        line = fmt.Sprintf("[%s] Order placed | table=%d | guest=%q | item=%q | price=%.2f | order_id=%s\n",
            ev.OccurredAt, ev.TableID, ev.GuestName, ev.ItemName, ev.Price, ev.OrderID)
    case EventStatusChanged:
        line = fmt.Sprintf("[%s] Status changed | table=%d | status=%s\n",
            ev.OccurredAt, ev.TableID, ev.Status)
    case EventTableFreed:
        line = fmt.Sprintf("[%s] Table freed | table=%d\n",
            ev.OccurredAt, ev.TableID)
    default:
        line = fmt.Sprintf("[%s] Unknown event %q | table=%d\n",
            ev.OccurredAt, ev.Type, ev.TableID)
    }

    if _, err := f.WriteString(line); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}
