package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"

	"github.com/zhouzirui/codesoft-bot/backend/internal/model/chat"
)

func TestSubjectSanitizesUserID(t *testing.T) {
	cases := map[string]string{
		"alice":      "chatbot.turns.alice",
		"a.b":        "chatbot.turns.a_b",
		"x*y>z":      "chatbot.turns.x_y_z",
		"first last": "chatbot.turns.first_last",
		"":           "chatbot.turns._",
	}
	for userID, want := range cases {
		if got := Subject("chatbot.turns", userID); got != want {
			t.Fatalf("Subject(%q) = %q, want %q", userID, got, want)
		}
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = Nop{}
	if err := p.PublishTurn(context.Background(), chat.Turn{UserID: "alice"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewNATSPublisherUnreachable(t *testing.T) {
	if _, err := NewNATSPublisher(Config{URL: "nats://127.0.0.1:1"}); err == nil {
		t.Fatal("expected connection error")
	}
}

func runServer(t *testing.T) *server.Server {
	t.Helper()

	ns, err := server.NewServer(&server.Options{
		Host:   "127.0.0.1",
		Port:   server.RANDOM_PORT,
		NoLog:  true,
		NoSigs: true,
	})
	if err != nil {
		t.Fatalf("NewServer err: %v", err)
	}
	go ns.Start()
	if !ns.ReadyForConnections(5 * time.Second) {
		t.Fatal("nats server not ready")
	}
	t.Cleanup(ns.Shutdown)
	return ns
}

func TestNATSPublisherPublishesTurn(t *testing.T) {
	ns := runServer(t)

	sub, err := nats.Connect(ns.ClientURL())
	if err != nil {
		t.Fatalf("connect err: %v", err)
	}
	defer sub.Close()

	inbox, err := sub.SubscribeSync("chatbot.turns.*")
	if err != nil {
		t.Fatalf("SubscribeSync err: %v", err)
	}
	if err := sub.Flush(); err != nil {
		t.Fatalf("Flush err: %v", err)
	}

	pub, err := NewNATSPublisher(Config{URL: ns.ClientURL(), SubjectPrefix: "chatbot.turns."})
	if err != nil {
		t.Fatalf("NewNATSPublisher err: %v", err)
	}

	sent := chat.Turn{
		UserID:    "a.b",
		Text:      "Hello! How can I assist you today?",
		IsBot:     true,
		Timestamp: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	if err := pub.PublishTurn(context.Background(), sent); err != nil {
		t.Fatalf("PublishTurn err: %v", err)
	}
	pub.Close()

	msg, err := inbox.NextMsg(5 * time.Second)
	if err != nil {
		t.Fatalf("NextMsg err: %v", err)
	}
	if msg.Subject != "chatbot.turns.a_b" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}

	var got chat.Turn
	if err := json.Unmarshal(msg.Data, &got); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if got.UserID != sent.UserID || got.Text != sent.Text || got.IsBot != sent.IsBot || !got.Timestamp.Equal(sent.Timestamp) {
		t.Fatalf("unexpected turn %+v", got)
	}
}

func TestNATSPublisherRejectsDoneContext(t *testing.T) {
	ns := runServer(t)

	pub, err := NewNATSPublisher(Config{URL: ns.ClientURL()})
	if err != nil {
		t.Fatalf("NewNATSPublisher err: %v", err)
	}
	defer pub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := pub.PublishTurn(ctx, chat.Turn{UserID: "alice"}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
