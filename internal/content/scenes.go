package content

import "cadence/internal/logging"

// NewScene returns a scene with empty content and idle status.
func NewScene(id int64) Scene {
	return Scene{
		ID:           id,
		Status:       StatusIdle,
		Dialogues:    []DialogueTurn{},
		VideoSources: []VideoSource{},
		Attachments:  []Attachment{},
	}
}

// AddScene creates an empty idle scene in the project. When after is non-nil
// and names a scene in the project, the new scene is inserted right after it;
// otherwise it is appended. A missing project is a no-op.
func (s *Store) AddScene(projectID string, after *int64) (Scene, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.projectIndex(projectID)
	if idx < 0 {
		return Scene{}, false
	}
	project := &s.projects[idx]
	id := s.ids.nextScene(func(candidate int64) bool {
		return sceneIndex(project.Scenes, candidate) >= 0
	})
	scene := NewScene(id)

	pos := len(project.Scenes)
	if after != nil {
		if at := sceneIndex(project.Scenes, *after); at >= 0 {
			pos = at + 1
		}
	}
	scenes := make([]Scene, 0, len(project.Scenes)+1)
	scenes = append(scenes, project.Scenes[:pos]...)
	scenes = append(scenes, scene)
	scenes = append(scenes, project.Scenes[pos:]...)
	project.Scenes = scenes

	s.logger.Debug("scene added",
		logging.Project(projectID),
		logging.Scene(id),
		logging.Int("position", pos))
	return scene.Clone(), true
}

// UpdateScene merges patch into the scene addressed by (projectID, sceneID).
// Scenes with the same id in other projects are untouched. A missing project
// or scene is a no-op; an unknown status fails with a ValidationError.
func (s *Store) UpdateScene(projectID string, sceneID int64, patch ScenePatch) (Scene, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pi := s.projectIndex(projectID)
	if pi < 0 {
		return Scene{}, false, nil
	}
	si := sceneIndex(s.projects[pi].Scenes, sceneID)
	if si < 0 {
		return Scene{}, false, nil
	}
	if err := patch.validate(); err != nil {
		return Scene{}, true, err
	}
	scene := &s.projects[pi].Scenes[si]
	patch.apply(scene)
	s.logger.Debug("scene updated",
		logging.Project(projectID),
		logging.Scene(sceneID))
	return scene.Clone(), true, nil
}

// DeleteScene removes the scene from the project. Remaining scenes keep their
// ids and relative order.
func (s *Store) DeleteScene(projectID string, sceneID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	pi := s.projectIndex(projectID)
	if pi < 0 {
		return false
	}
	scenes := s.projects[pi].Scenes
	si := sceneIndex(scenes, sceneID)
	if si < 0 {
		return false
	}
	s.projects[pi].Scenes = append(scenes[:si:si], scenes[si+1:]...)
	s.logger.Debug("scene deleted",
		logging.Project(projectID),
		logging.Scene(sceneID))
	return true
}
