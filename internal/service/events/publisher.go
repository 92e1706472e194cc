package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/nats-io/nats.go"

	"github.com/zhouzirui/codesoft-bot/backend/internal/model/chat"
)

// Publisher fans recorded turns out to interested consumers.
type Publisher interface {
	PublishTurn(ctx context.Context, turn chat.Turn) error
}

// Nop discards every turn.
type Nop struct{}

// PublishTurn implements Publisher.
func (Nop) PublishTurn(context.Context, chat.Turn) error { return nil }

// Config describes the NATS connection.
type Config struct {
	URL           string
	SubjectPrefix string
}

// NATSPublisher publishes turns as JSON on <prefix>.<user_id>.
type NATSPublisher struct {
	nc     *nats.Conn
	prefix string
}

// NewNATSPublisher connects to the configured server.
func NewNATSPublisher(cfg Config) (*NATSPublisher, error) {
	nc, err := nats.Connect(cfg.URL, nats.Name("codesoft-bot"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	prefix := strings.Trim(cfg.SubjectPrefix, ".")
	if prefix == "" {
		prefix = "chatbot.turns"
	}
	log.Printf("[events] publishing turns to %s.* on %s", prefix, nc.ConnectedUrl())
	return &NATSPublisher{nc: nc, prefix: prefix}, nil
}

// PublishTurn implements Publisher.
func (p *NATSPublisher) PublishTurn(ctx context.Context, turn chat.Turn) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("failed to marshal turn: %w", err)
	}

	subject := Subject(p.prefix, turn.UserID)
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish turn to subject '%s': %w", subject, err)
	}
	return nil
}

// Close flushes pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	if p.nc == nil {
		return
	}
	if err := p.nc.Drain(); err != nil {
		log.Printf("[events] drain failed: %v", err)
		p.nc.Close()
	}
}

// Subject builds the subject for userID. Characters that NATS treats as
// separators or wildcards are replaced so each user maps to one token.
func Subject(prefix, userID string) string {
	token := strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t', '\r', '\n':
			return '_'
		}
		return r
	}, userID)
	if token == "" {
		token = "_"
	}
	return prefix + "." + token
}
