// Package idgen provides unique id generation for item trees. Every
// generation pass draws fresh ids from an injected Generator, so ids are
// never reused across passes.
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock/mock.go -package=idgenmock github.com/tetrisdev/SPTServer/internal/pkg/idgen Generator

// Generator generates unique identifiers.
type Generator interface {
	Generate() string
}

// UUIDGenerator generates UUID-based ids with an optional prefix. This is the
// production generator: the client treats item ids as opaque unique strings.
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a new UUID generator with an optional prefix.
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate creates a new UUID-based id.
func (g *UUIDGenerator) Generate() string {
	id := uuid.New().String()
	if g.prefix != "" {
		return fmt.Sprintf("%s_%s", g.prefix, id)
	}
	return id
}

// SequentialGenerator generates predictable sequential ids for tests.
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a new sequential generator.
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate creates the next sequential id.
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	if g.prefix != "" {
		return fmt.Sprintf("%s_%d", g.prefix, n)
	}
	return fmt.Sprintf("%d", n)
}
