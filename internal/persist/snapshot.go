package persist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"cadence/internal/content"
)

// Snapshot is the persisted projection. Session state, selections and
// filters are never part of it.
type Snapshot struct {
	Channels      []content.Channel      `json:"channels"`
	VideoProjects []content.VideoProject `json:"videoProjects"`
	ViewMode      string                 `json:"viewMode"`
}

// Encode serializes s.
func Encode(s Snapshot) ([]byte, error) {
	if s.Channels == nil {
		s.Channels = []content.Channel{}
	}
	if s.VideoProjects == nil {
		s.VideoProjects = []content.VideoProject{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a stored snapshot. Anything other than a JSON object with the
// expected field types is rejected.
func Decode(data []byte) (Snapshot, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Snapshot{}, errors.New("decode snapshot: payload is empty")
	}
	if trimmed[0] != '{' {
		return Snapshot{}, errors.New("decode snapshot: payload is not an object")
	}
	var s Snapshot
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}
