package reply

import (
	"errors"
	"math/rand"

	"github.com/zhouzirui/codesoft-bot/backend/internal/analysis/intent"
)

var ErrMissingDefault = errors.New("catalog has no default replies")

// Picker chooses an index in [0, n). *rand.Rand satisfies it.
type Picker interface {
	IntN(n int) int
}

type globalPicker struct{}

func (globalPicker) IntN(n int) int { return rand.Intn(n) }

// Generator turns a detected intent into a canned reply.
type Generator struct {
	catalog Catalog
	picker  Picker
}

// NewGenerator validates catalog and binds it to picker. A nil picker uses
// the process-wide random source.
func NewGenerator(catalog Catalog, picker Picker) (*Generator, error) {
	if len(catalog[DefaultKey]) == 0 {
		return nil, ErrMissingDefault
	}
	if picker == nil {
		picker = globalPicker{}
	}

	copied := make(Catalog, len(catalog))
	for name, replies := range catalog {
		if len(replies) == 0 {
			continue
		}
		copied[name] = append([]string(nil), replies...)
	}
	return &Generator{catalog: copied, picker: picker}, nil
}

// Respond picks one reply for name. When ok is false or name has no
// replies, the default set is used.
func (g *Generator) Respond(name intent.Name, ok bool) string {
	candidates := g.candidates(name, ok)
	return candidates[g.picker.IntN(len(candidates))]
}

// Candidates returns every reply Respond may produce for name.
func (g *Generator) Candidates(name intent.Name, ok bool) []string {
	return append([]string(nil), g.candidates(name, ok)...)
}

func (g *Generator) candidates(name intent.Name, ok bool) []string {
	if ok {
		if replies, found := g.catalog[name]; found {
			return replies
		}
	}
	return g.catalog[DefaultKey]
}
