package content

import (
	"time"

	"github.com/google/uuid"
)

const (
	channelIDPrefix = "canal_"
	projectIDPrefix = "project_"
)

// idSource hands out entity ids. Channel and project ids are prefixed UUIDv7
// values, so they sort by creation time and are never reissued. Scene ids are
// millisecond timestamps that only move forward within one source.
type idSource struct {
	now       func() time.Time
	lastScene int64
}

func newEntityID(prefix string, taken func(string) bool) string {
	for {
		id, err := uuid.NewV7()
		if err != nil {
			id = uuid.New()
		}
		candidate := prefix + id.String()
		if !taken(candidate) {
			return candidate
		}
	}
}

func (s *idSource) nextScene(taken func(int64) bool) int64 {
	candidate := s.now().UnixMilli()
	if candidate <= s.lastScene {
		candidate = s.lastScene + 1
	}
	for taken(candidate) {
		candidate++
	}
	s.lastScene = candidate
	return candidate
}
