package event

import "github.com/google/uuid"

// Token identifies one subscription. Tokens are random 128-bit values,
// compare by value, and hold no reference to the subscriber. The zero
// Token is never issued.
type Token struct {
	id uuid.UUID
}

func newToken() Token {
	return Token{id: uuid.New()}
}

// IsZero reports whether t is the zero Token.
func (t Token) IsZero() bool {
	return t.id == uuid.Nil
}

// String returns the canonical UUID form of the token.
func (t Token) String() string {
	return t.id.String()
}
