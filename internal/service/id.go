package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	UUIDStrategy      = "uuid"
	TimestampStrategy = "timestamp"
)

const timestampLayout = "2006-01-02T15:04:05.000"

type IDGenerator interface {
	NewID() string
}

func NewIDGenerator(strategy string) (IDGenerator, error) {
	switch strategy {
	case UUIDStrategy:
		return UUIDGenerator{}, nil
	case TimestampStrategy:
		return NewTimestampGenerator(time.Now), nil
	default:
		return nil, fmt.Errorf("service.NewIDGenerator unknown strategy: %q", strategy)
	}
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// TimestampGenerator produces sortable UTC timestamps with millisecond precision.
// Ids asked for within the same millisecond, or after the clock moved backwards,
// get a sequence suffix on the latest timestamp seen: 2023-06-28T15:15:00.000Z-0001.
type TimestampGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	last string
	seq  int
}

func NewTimestampGenerator(now func() time.Time) *TimestampGenerator {
	return &TimestampGenerator{
		now: now,
	}
}

func (g *TimestampGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ts := g.now().UTC().Format(timestampLayout) + "Z"
	if ts > g.last {
		g.last = ts
		g.seq = 0
		return ts
	}
	g.seq++
	return fmt.Sprintf("%s-%04d", g.last, g.seq)
}
