package importer

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"cadence/internal/content"
)

// Format names an accepted payload encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

//go:embed sample_project.json
var sampleProject []byte

// ParseFormat resolves a user-supplied format name. Empty input selects JSON.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported import format %q", value)
	}
}

// FormatForPath picks the format from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

type payload struct {
	Title       *string         `json:"title"`
	Description string          `json:"description"`
	Scenes      []content.Scene `json:"scenes"`
}

// Parse decodes data and normalizes it into a project payload. Input that is
// not a structured object fails with a content.FormatError; a field of the
// wrong type or a missing or blank title fails with a content.ValidationError. Scenes without an id get one derived from now
// plus their position, skipping ids already used in the batch. Scenes without
// a status become idle.
func Parse(data []byte, format Format, now time.Time) (content.ProjectPayload, error) {
	raw, err := decode(data, format)
	if err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return content.ProjectPayload{}, &content.ValidationError{
				Field:  typeErr.Field,
				Reason: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
			}
		}
		return content.ProjectPayload{}, &content.FormatError{Err: err}
	}
	if raw.Title == nil || strings.TrimSpace(*raw.Title) == "" {
		return content.ProjectPayload{}, &content.ValidationError{Field: "title", Reason: "payload must include a title"}
	}

	scenes, err := normalizeScenes(raw.Scenes, now)
	if err != nil {
		return content.ProjectPayload{}, err
	}
	return content.ProjectPayload{
		Title:       *raw.Title,
		Description: raw.Description,
		Scenes:      scenes,
	}, nil
}

func decode(data []byte, format Format) (payload, error) {
	var raw payload
	if len(bytes.TrimSpace(data)) == 0 {
		return raw, errors.New("payload is empty")
	}
	switch format {
	case FormatTOML:
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return raw, fmt.Errorf("parse toml: %w", err)
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return raw, fmt.Errorf("convert toml: %w", err)
		}
		data = converted
	case FormatJSON, "":
	default:
		return raw, fmt.Errorf("unsupported import format %q", format)
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return raw, fmt.Errorf("parse json: %w", err)
	}
	return raw, nil
}

func normalizeScenes(scenes []content.Scene, now time.Time) ([]content.Scene, error) {
	if scenes == nil {
		return nil, nil
	}
	taken := make(map[int64]struct{}, len(scenes))
	for i, scene := range scenes {
		if scene.ID < 0 {
			return nil, &content.ValidationError{Field: fmt.Sprintf("scenes[%d].id", i), Reason: "must be a positive integer"}
		}
		if scene.ID > 0 {
			taken[scene.ID] = struct{}{}
		}
	}

	base := now.UnixMilli()
	out := make([]content.Scene, len(scenes))
	for i, scene := range scenes {
		if scene.ID == 0 {
			candidate := base + int64(i)
			for {
				if _, used := taken[candidate]; !used {
					break
				}
				candidate++
			}
			scene.ID = candidate
			taken[candidate] = struct{}{}
		}
		status, err := content.ParseSceneStatus(string(scene.Status))
		if err != nil {
			return nil, &content.ValidationError{Field: fmt.Sprintf("scenes[%d].status", i), Reason: fmt.Sprintf("unknown scene status %q", scene.Status)}
		}
		scene.Status = status
		out[i] = scene
	}
	return out, nil
}

// SampleJSON returns the example project document.
func SampleJSON() []byte {
	return bytes.Clone(sampleProject)
}

// SamplePayload returns the example project as a parsed payload.
func SamplePayload() content.ProjectPayload {
	p, err := Parse(sampleProject, FormatJSON, time.Now())
	if err != nil {
		panic(fmt.Sprintf("embedded sample project is invalid: %v", err))
	}
	return p
}
