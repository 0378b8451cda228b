package content

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"cadence/internal/logging"
)

// DefaultProjectTitle is used when a project payload carries no title.
const DefaultProjectTitle = "Untitled Project"

// Store owns the channel and project collections. All methods are safe for
// concurrent use; each call is one atomic step.
type Store struct {
	mu       sync.RWMutex
	channels []Channel
	projects []VideoProject

	ids      idSource
	now      func() time.Time
	validate *validator.Validate
	logger   *slog.Logger
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the time source used for timestamps and scene ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger attaches a logger; mutations are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logging.NewComponentLogger(logger, "store")
	}
}

// NewStore returns an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		now:      time.Now,
		validate: newValidator(),
		logger:   logging.NewComponentLogger(nil, "store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ids.now = s.now
	return s
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

func (s *Store) checkChannel(in ChannelInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return invalid(fe.Field(), fmt.Sprintf("failed %q rule", fe.Tag()))
	}
	return invalid("", err.Error())
}

// Restore replaces the collections with previously persisted data. The data
// is accepted whole or not at all: duplicate ids, dangling channel references,
// and malformed scenes reject the restore and leave the store unchanged.
func (s *Store) Restore(channels []Channel, projects []VideoProject) error {
	channelIDs := make(map[string]struct{}, len(channels))
	for _, ch := range channels {
		if ch.ID == "" {
			return invalid("id", "channel id is empty")
		}
		if _, dup := channelIDs[ch.ID]; dup {
			return invalid("id", fmt.Sprintf("duplicate channel id %q", ch.ID))
		}
		channelIDs[ch.ID] = struct{}{}
	}
	projectIDs := make(map[string]struct{}, len(projects))
	for _, p := range projects {
		if p.ID == "" {
			return invalid("id", "project id is empty")
		}
		if _, dup := projectIDs[p.ID]; dup {
			return invalid("id", fmt.Sprintf("duplicate project id %q", p.ID))
		}
		projectIDs[p.ID] = struct{}{}
		if _, ok := channelIDs[p.ChannelID]; !ok {
			return &ReferenceError{Entity: "channel", ID: p.ChannelID}
		}
		if err := checkScenes(p.Scenes); err != nil {
			return fmt.Errorf("project %s: %w", p.ID, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.channels = cloneChannels(channels)
	s.projects = cloneProjects(projects)
	for _, p := range s.projects {
		for _, scene := range p.Scenes {
			if scene.ID > s.ids.lastScene {
				s.ids.lastScene = scene.ID
			}
		}
	}
	s.logger.Debug("store restored",
		logging.Int("channel_count", len(s.channels)),
		logging.Int("project_count", len(s.projects)))
	return nil
}

// Channels returns the channel collection in insertion order.
func (s *Store) Channels() []Channel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneChannels(s.channels)
}

// Channel returns the channel with the given id.
func (s *Store) Channel(id string) (Channel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.channelIndex(id); idx >= 0 {
		return s.channels[idx], true
	}
	return Channel{}, false
}

// Projects returns the project collection in insertion order.
func (s *Store) Projects() []VideoProject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProjects(s.projects)
}

// Project returns the project with the given id.
func (s *Store) Project(id string) (VideoProject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.projectIndex(id); idx >= 0 {
		return s.projects[idx].Clone(), true
	}
	return VideoProject{}, false
}

// ProjectsForChannel returns the projects owned by channelID in insertion order.
func (s *Store) ProjectsForChannel(channelID string) []VideoProject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []VideoProject
	for _, p := range s.projects {
		if p.ChannelID == channelID {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Scene resolves a scene by its compound key.
func (s *Store) Scene(key SceneKey) (Scene, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pi := s.projectIndex(key.ProjectID)
	if pi < 0 {
		return Scene{}, false
	}
	if si := sceneIndex(s.projects[pi].Scenes, key.SceneID); si >= 0 {
		return s.projects[pi].Scenes[si].Clone(), true
	}
	return Scene{}, false
}

func (s *Store) channelIndex(id string) int {
	for i := range s.channels {
		if s.channels[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) projectIndex(id string) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}
	return -1
}

func sceneIndex(scenes []Scene, id int64) int {
	for i := range scenes {
		if scenes[i].ID == id {
			return i
		}
	}
	return -1
}
