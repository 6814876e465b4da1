package intrinsics

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// tokenLength is the fixed width of generated placeholder tokens. Tokens
// become Fn::Sub parameter names, so they must stay alphanumeric.
const tokenLength = 8

// TokenSource produces placeholder tokens. A source must not repeat a
// token within the lifetime of one compilation pass: two colliding tokens
// silently corrupt the assembled substitution template.
type TokenSource interface {
	Next() string
}

// sequentialSource numbers tokens from zero. Structural uniqueness is
// guaranteed, and a fresh source replayed over the same document yields
// byte-identical output.
type sequentialSource struct {
	n uint64
}

// NewSequentialSource returns a deterministic token source starting at
// token "p00000000". This is the compiler default.
func NewSequentialSource() TokenSource {
	return &sequentialSource{}
}

func (s *sequentialSource) Next() string {
	token := fmt.Sprintf("p%0*x", tokenLength, s.n)
	s.n++
	return token
}

// randomSource draws tokens from UUIDs. Uniqueness is probabilistic;
// the token width keeps the collision chance negligible for any
// realistic definition, but deterministic builds should prefer the
// sequential source.
type randomSource struct{}

// NewRandomSource returns a UUID-backed token source.
func NewRandomSource() TokenSource {
	return randomSource{}
}

func (randomSource) Next() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "p" + raw[:tokenLength]
}
