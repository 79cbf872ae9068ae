package id

import (
	"crypto/rand"
	"fmt"

	"github.com/google/uuid"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generator creates opaque IDs and short human-facing codes.
type Generator interface {
	NewID(prefix string) (string, error)
	NewCode(length int) (string, error)
}

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID(prefix string) (string, error) {
	v, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	if prefix == "" {
		return v.String(), nil
	}

	return prefix + "-" + v.String(), nil
}

// NewCode returns an uppercase alphanumeric code of the given length.
func (g *RandomGenerator) NewCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("code length must be > 0")
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes for code: %w", err)
	}

	out := make([]byte, length)
	for i, b := range buf {
		out[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(out), nil
}
