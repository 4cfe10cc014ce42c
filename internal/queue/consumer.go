package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// BookingConsumer appends every booking.confirmed message to LogPath as
// one human readable line.
type BookingConsumer struct {
	URL     string
	LogPath string
	Log     *zap.Logger
}

func NewBookingConsumer(url, logPath string, log *zap.Logger) *BookingConsumer {
	if logPath == "" {
		logPath = filepath.Join("logs", "booking.log")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &BookingConsumer{URL: url, LogPath: logPath, Log: log}
}

// Run dials the broker and consumes until ctx is done, reconnecting with
// exponential backoff capped at 30s. It returns ctx.Err().
func (bc *BookingConsumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(bc.URL)
		if err != nil {
			bc.Log.Warn("booking-consumer: dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			if !wait(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = bc.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		bc.Log.Warn("booking-consumer: consume loop ended, reconnecting", zap.Error(err))
		if !wait(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (bc *BookingConsumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		bc.Log.Warn("booking-consumer: set QoS failed", zap.Error(err))
	}
	if _, err := ch.QueueDeclare(BookingConfirmedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(BookingConfirmedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := bc.handle(d.Body); err != nil {
				bc.Log.Error("booking-consumer: handle message failed", zap.Error(err))
				// Do not requeue; a malformed message would loop forever.
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (bc *BookingConsumer) handle(body []byte) error {
	var ev BookingConfirmedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(bc.LogPath), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(bc.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	bc.Log.Debug("booking-consumer: recorded booking", zap.String("reference", ev.Reference))
	return nil
}

// FormatLine renders ev as a single newline-terminated log line.
func FormatLine(ev BookingConfirmedEvent) string {
	return fmt.Sprintf("[%s] Appointment confirmed | reference=%s | slot_id=%d | branch=%q | city=%q | province=%q | date=%s | time=%s | services=[%s] | applicant=%q\n",
		ev.ConfirmedAt, ev.Reference, ev.SlotID, ev.BranchName, ev.CityName, ev.ProvinceName,
		ev.Date, ev.Time, strings.Join(ev.Services, ","), ev.ApplicantName)
}

func wait(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
