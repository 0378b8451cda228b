package workspace

import "cadence/internal/content"

// selection holds weak references by id; readers resolve them against the
// store and get nothing once the target is gone.
type selection struct {
	channelID string
	projectID string
	scene     *content.SceneKey
}

func (s *selection) forgetChannel(channelID string, removedProjects []string) {
	if s.channelID == channelID {
		s.channelID = ""
	}
	for _, id := range removedProjects {
		s.forgetProject(id)
	}
}

func (s *selection) forgetProject(projectID string) {
	if s.projectID == projectID {
		s.projectID = ""
	}
	if s.scene != nil && s.scene.ProjectID == projectID {
		s.scene = nil
	}
}

func (s *selection) forgetScene(key content.SceneKey) {
	if s.scene != nil && *s.scene == key {
		s.scene = nil
	}
}

func (s *selection) forgetMissingScene(project content.VideoProject) {
	if s.scene == nil || s.scene.ProjectID != project.ID {
		return
	}
	for _, scene := range project.Scenes {
		if scene.ID == s.scene.SceneID {
			return
		}
	}
	s.scene = nil
}

// SelectChannel marks the channel as current. Unknown ids are ignored.
func (w *Workspace) SelectChannel(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.store.Channel(id); !ok {
		return false
	}
	w.selection.channelID = id
	return true
}

// SelectProject marks the project as current. Unknown ids are ignored.
func (w *Workspace) SelectProject(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.store.Project(id); !ok {
		return false
	}
	w.selection.projectID = id
	return true
}

// SelectScene marks the scene as current. Unknown keys are ignored.
func (w *Workspace) SelectScene(projectID string, sceneID int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	key := content.SceneKey{ProjectID: projectID, SceneID: sceneID}
	if _, ok := w.store.Scene(key); !ok {
		return false
	}
	w.selection.scene = &key
	return true
}

func (w *Workspace) SelectedChannel() (content.Channel, bool) {
	w.mu.Lock()
	id := w.selection.channelID
	w.mu.Unlock()
	if id == "" {
		return content.Channel{}, false
	}
	return w.store.Channel(id)
}

func (w *Workspace) SelectedProject() (content.VideoProject, bool) {
	w.mu.Lock()
	id := w.selection.projectID
	w.mu.Unlock()
	if id == "" {
		return content.VideoProject{}, false
	}
	return w.store.Project(id)
}

func (w *Workspace) SelectedScene() (content.Scene, bool) {
	w.mu.Lock()
	key := w.selection.scene
	w.mu.Unlock()
	if key == nil {
		return content.Scene{}, false
	}
	return w.store.Scene(*key)
}

func (w *Workspace) clearSelections() {
	w.mu.Lock()
	w.selection = selection{}
	w.mu.Unlock()
}
