package content

import (
	"fmt"
	"strings"

	"cadence/internal/logging"
)

// AddVideoProject attaches a new project to an existing channel. A missing
// channel fails with a ReferenceError; scenes with non-positive or duplicate
// ids, or unknown statuses, fail with a ValidationError. Empty scene statuses
// become idle.
func (s *Store) AddVideoProject(channelID string, payload ProjectPayload) (VideoProject, error) {
	scenes, err := normalizeScenes(payload.Scenes)
	if err != nil {
		return VideoProject{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.channelIndex(channelID) < 0 {
		return VideoProject{}, &ReferenceError{Entity: "channel", ID: channelID}
	}

	title := strings.TrimSpace(payload.Title)
	if title == "" {
		title = DefaultProjectTitle
	} else {
		title = payload.Title
	}

	project := VideoProject{
		ID: newEntityID(projectIDPrefix, func(id string) bool {
			return s.projectIndex(id) >= 0
		}),
		Title:       title,
		Description: payload.Description,
		ChannelID:   channelID,
		CreatedAt:   s.timestamp(),
		Scenes:      scenes,
	}
	for _, scene := range scenes {
		if scene.ID > s.ids.lastScene {
			s.ids.lastScene = scene.ID
		}
	}
	s.projects = append(s.projects, project)
	s.logger.Debug("project added",
		logging.Project(project.ID),
		logging.Channel(channelID),
		logging.Int("scene_count", len(scenes)))
	return project.Clone(), nil
}

// UpdateVideoProject shallow-merges patch into the project. A non-nil
// patch.Scenes replaces the whole scene sequence. A missing id is a no-op.
func (s *Store) UpdateVideoProject(id string, patch ProjectPatch) (VideoProject, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.projectIndex(id)
	if idx < 0 {
		return VideoProject{}, false, nil
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return VideoProject{}, true, invalid("title", "must not be empty")
	}
	var scenes []Scene
	if patch.Scenes != nil {
		normalized, err := normalizeScenes(*patch.Scenes)
		if err != nil {
			return VideoProject{}, true, err
		}
		scenes = normalized
	}

	project := &s.projects[idx]
	setString(&project.Title, patch.Title)
	setString(&project.Description, patch.Description)
	if patch.Scenes != nil {
		project.Scenes = scenes
		for _, scene := range scenes {
			if scene.ID > s.ids.lastScene {
				s.ids.lastScene = scene.ID
			}
		}
	}
	s.logger.Debug("project updated", logging.Project(id))
	return project.Clone(), true, nil
}

// DeleteVideoProject removes the project and its embedded scenes.
func (s *Store) DeleteVideoProject(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.projectIndex(id)
	if idx < 0 {
		return false
	}
	s.projects = append(s.projects[:idx:idx], s.projects[idx+1:]...)
	s.logger.Debug("project deleted", logging.Project(id))
	return true
}

func normalizeScenes(scenes []Scene) ([]Scene, error) {
	out := cloneScenes(scenes)
	if out == nil {
		out = []Scene{}
	}
	for i := range out {
		if out[i].Status == "" {
			out[i].Status = StatusIdle
		}
	}
	if err := checkScenes(out); err != nil {
		return nil, err
	}
	return out, nil
}

func checkScenes(scenes []Scene) error {
	seen := make(map[int64]struct{}, len(scenes))
	for i, scene := range scenes {
		if scene.ID <= 0 {
			return invalid(fmt.Sprintf("scenes[%d].id", i), "must be a positive integer")
		}
		if _, dup := seen[scene.ID]; dup {
			return invalid(fmt.Sprintf("scenes[%d].id", i), fmt.Sprintf("duplicate scene id %d", scene.ID))
		}
		seen[scene.ID] = struct{}{}
		if !scene.Status.Valid() {
			return invalid(fmt.Sprintf("scenes[%d].status", i), fmt.Sprintf("unknown scene status %q", scene.Status))
		}
	}
	return nil
}
