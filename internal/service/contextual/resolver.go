package contextual

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zhouzirui/codesoft-bot/backend/internal/model/chat"
)

// PricingOverride is returned when a pricing question follows a message
// that showed interest in a package.
const PricingOverride = "Great! For our basic package, it's $99/month. Want more details?"

var ErrForeignTurn = errors.New("history contains a turn from another user")

// Kind tells the caller what Resolve decided.
type Kind int

const (
	NoOverride Kind = iota
	Override
	Failure
)

func (k Kind) String() string {
	switch k {
	case Override:
		return "override"
	case Failure:
		return "failure"
	default:
		return "no-override"
	}
}

// Result carries the outcome of a resolution. Text is set for Override,
// Err for Failure.
type Result struct {
	Kind Kind
	Text string
	Err  error
}

// Resolver inspects recent history to replace the default reply.
type Resolver struct {
	triggers []string
}

// NewResolver returns the pricing follow-up resolver.
func NewResolver() *Resolver {
	return &Resolver{triggers: []string{"interested", "specify"}}
}

// Resolve looks at prior, the history of userID recorded before message
// arrived. Only the second-to-last prior turn is consulted. A turn owned by
// another user means the history source is misbehaving and yields Failure.
func (r *Resolver) Resolve(userID string, prior []chat.Turn, message string) Result {
	for i, turn := range prior {
		if turn.UserID != userID {
			return Result{Kind: Failure, Err: fmt.Errorf("turn %d belongs to %q: %w", i, turn.UserID, ErrForeignTurn)}
		}
	}

	if len(prior) < 2 {
		return Result{Kind: NoOverride}
	}
	if !strings.Contains(strings.ToLower(message), "pricing") {
		return Result{Kind: NoOverride}
	}

	previous := strings.ToLower(prior[len(prior)-2].Text)
	for _, trigger := range r.triggers {
		if strings.Contains(previous, trigger) {
			return Result{Kind: Override, Text: PricingOverride}
		}
	}
	return Result{Kind: NoOverride}
}
