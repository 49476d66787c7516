package service

import (
	"crypto/rand"
	"fmt"
	"io"
)

// codeAlphabet has exactly 64 symbols, so masking a random byte with 63
// picks each symbol with equal probability.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

// CodeGenerator produces random short codes.
type CodeGenerator interface {
	Generate(length int) (string, error)
}

type randomCodeGenerator struct {
	random io.Reader
}

// NewCodeGenerator returns a [CodeGenerator] backed by crypto/rand.
func NewCodeGenerator() CodeGenerator {
	return &randomCodeGenerator{random: rand.Reader}
}

func (g *randomCodeGenerator) Generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid code length %d", length)
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(g.random, buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	for i, b := range buf {
		buf[i] = codeAlphabet[b&63]
	}

	return string(buf), nil
}
