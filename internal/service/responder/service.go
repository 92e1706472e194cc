package responder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino/compose"

	"github.com/zhouzirui/codesoft-bot/backend/internal/analysis/intent"
	"github.com/zhouzirui/codesoft-bot/backend/internal/model/chat"
	"github.com/zhouzirui/codesoft-bot/backend/internal/service/contextual"
	"github.com/zhouzirui/codesoft-bot/backend/internal/service/events"
)

// Store is the subset of the message store an exchange needs.
type Store interface {
	Register(ctx context.Context, userID string) bool
	HistoryFor(ctx context.Context, userID string) ([]chat.Turn, error)
	Append(ctx context.Context, userID, text string, isBot bool) chat.Turn
}

// Resolver may replace the default reply based on earlier turns.
type Resolver interface {
	Resolve(userID string, prior []chat.Turn, message string) contextual.Result
}

// Generator produces the canned reply for an intent.
type Generator interface {
	Respond(name intent.Name, ok bool) string
}

// Deps groups the collaborators of a Service.
type Deps struct {
	Store     Store
	Resolver  Resolver
	Generator Generator
	Publisher events.Publisher
}

// Reply is the outcome of one exchange.
type Reply struct {
	Response   string
	Intent     intent.Name
	Matched    bool
	Overridden bool
	Timestamp  time.Time
}

// IntentPtr returns the detected intent, or nil when nothing matched.
func (r Reply) IntentPtr() *string {
	if !r.Matched {
		return nil
	}
	name := string(r.Intent)
	return &name
}

type exchange struct {
	userID     string
	message    string
	prior      []chat.Turn
	userTurn   chat.Turn
	intent     intent.Name
	matched    bool
	resolution contextual.Result
	response   string
	botTurn    chat.Turn
}

// Service runs user messages through record, detect, resolve, reply and
// persist stages. Exchanges are serialised so every user turn is followed
// by its own bot turn.
type Service struct {
	deps  Deps
	mu    sync.Mutex
	chain compose.Runnable[*exchange, *exchange]
}

// New compiles the exchange pipeline.
func New(ctx context.Context, deps Deps) (*Service, error) {
	if deps.Store == nil || deps.Resolver == nil || deps.Generator == nil {
		return nil, errors.New("responder: store, resolver and generator are required")
	}
	if deps.Publisher == nil {
		deps.Publisher = events.Nop{}
	}

	s := &Service{deps: deps}

	chain := compose.NewChain[*exchange, *exchange]()
	chain.AppendLambda(compose.InvokableLambda(s.record), compose.WithNodeName("record"))
	chain.AppendLambda(compose.InvokableLambda(s.detect), compose.WithNodeName("detect"))
	chain.AppendLambda(compose.InvokableLambda(s.resolve), compose.WithNodeName("resolve"))
	chain.AppendLambda(compose.InvokableLambda(s.reply), compose.WithNodeName("reply"))
	chain.AppendLambda(compose.InvokableLambda(s.persist), compose.WithNodeName("persist"))

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile responder chain: %w", err)
	}
	s.chain = runnable
	return s, nil
}

// Respond handles one inbound message from userID. userID is opaque and may
// be empty.
func (s *Service) Respond(ctx context.Context, userID, message string) (Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.chain.Invoke(ctx, &exchange{userID: userID, message: strings.TrimSpace(message)})
	if err != nil {
		return Reply{}, fmt.Errorf("failed to run responder chain: %w", err)
	}

	// Published under the lock so subscribers see turns in store order.
	s.publish(ctx, out.userTurn, out.botTurn)

	return Reply{
		Response:   out.response,
		Intent:     out.intent,
		Matched:    out.matched,
		Overridden: out.resolution.Kind == contextual.Override,
		Timestamp:  out.botTurn.Timestamp,
	}, nil
}

// record registers the user, snapshots the history that precedes this
// message and appends the user turn.
func (s *Service) record(ctx context.Context, ex *exchange) (*exchange, error) {
	if s.deps.Store.Register(ctx, ex.userID) {
		log.Printf("[responder] registered user=%s", ex.userID)
	}

	prior, err := s.deps.Store.HistoryFor(ctx, ex.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	ex.prior = prior
	ex.userTurn = s.deps.Store.Append(ctx, ex.userID, ex.message, false)
	log.Printf("[responder] user=%s sent: %s", ex.userID, ex.message)
	return ex, nil
}

func (s *Service) detect(_ context.Context, ex *exchange) (*exchange, error) {
	ex.intent, ex.matched = intent.Detect(ex.message)
	return ex, nil
}

func (s *Service) resolve(_ context.Context, ex *exchange) (*exchange, error) {
	ex.resolution = s.deps.Resolver.Resolve(ex.userID, ex.prior, ex.message)
	if ex.resolution.Kind == contextual.Failure {
		log.Printf("[responder] contextual resolution failed for user=%s, using default reply: %v", ex.userID, ex.resolution.Err)
	}
	return ex, nil
}

func (s *Service) reply(_ context.Context, ex *exchange) (*exchange, error) {
	if ex.resolution.Kind == contextual.Override && ex.resolution.Text != "" {
		ex.response = ex.resolution.Text
		return ex, nil
	}
	ex.response = s.deps.Generator.Respond(ex.intent, ex.matched)
	return ex, nil
}

func (s *Service) persist(ctx context.Context, ex *exchange) (*exchange, error) {
	ex.botTurn = s.deps.Store.Append(ctx, ex.userID, ex.response, true)
	return ex, nil
}

func (s *Service) publish(ctx context.Context, turns ...chat.Turn) {
	for _, turn := range turns {
		if err := s.deps.Publisher.PublishTurn(ctx, turn); err != nil {
			log.Printf("[responder] failed to publish turn for user=%s: %v", turn.UserID, err)
		}
	}
}
