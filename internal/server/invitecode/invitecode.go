// Package invitecode issues the short shareable codes that identify families.
package invitecode

import (
	"crypto/rand"
	"fmt"
	"io"
)

// Alphabet is the set of characters a code is drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultLength is used when a Generator is built with a non-positive length.
const DefaultLength = 6

// MaxLength is the width of the families.invite_code column.
const MaxLength = 32

// Issuer produces a fresh invite code. Uniqueness across families is the
// store's job, not the issuer's.
type Issuer interface {
	Issue() (string, error)
}

// Generator draws codes uniformly from Alphabet.
type Generator struct {
	length int
	rand   io.Reader
}

// NewGenerator builds a Generator for codes of the given length. Lengths
// above MaxLength are clamped to it.
func NewGenerator(length int) *Generator {
	if length <= 0 {
		length = DefaultLength
	}
	if length > MaxLength {
		length = MaxLength
	}
	return &Generator{length: length, rand: rand.Reader}
}

func (g *Generator) Issue() (string, error) {
	// 252 is the largest multiple of 36 below 256; larger bytes are rejected
	// so every character is equally likely.
	const limit = 256 - 256%len(Alphabet)

	code := make([]byte, 0, g.length)
	buf := make([]byte, g.length)
	for len(code) < g.length {
		if _, err := io.ReadFull(g.rand, buf); err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			code = append(code, Alphabet[int(b)%len(Alphabet)])
			if len(code) == g.length {
				break
			}
		}
	}
	return string(code), nil
}
