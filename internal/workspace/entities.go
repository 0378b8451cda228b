package workspace

import (
	"cadence/internal/content"
	"cadence/internal/importer"
)

// Channels returns all channels in insertion order.
func (w *Workspace) Channels() []content.Channel {
	return w.store.Channels()
}

// Channel looks up one channel.
func (w *Workspace) Channel(id string) (content.Channel, bool) {
	return w.store.Channel(id)
}

// Projects returns all video projects in insertion order.
func (w *Workspace) Projects() []content.VideoProject {
	return w.store.Projects()
}

// Project looks up one video project.
func (w *Workspace) Project(id string) (content.VideoProject, bool) {
	return w.store.Project(id)
}

// ProjectsForChannel lists the projects owned by channelID.
func (w *Workspace) ProjectsForChannel(channelID string) []content.VideoProject {
	return w.store.ProjectsForChannel(channelID)
}

// Scene looks up a scene by project and scene id.
func (w *Workspace) Scene(projectID string, sceneID int64) (content.Scene, bool) {
	return w.store.Scene(content.SceneKey{ProjectID: projectID, SceneID: sceneID})
}

func (w *Workspace) AddChannel(in content.ChannelInput) (content.Channel, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	ch, err := w.store.AddChannel(in)
	if err != nil {
		return content.Channel{}, err
	}
	w.persistLocked()
	return ch, nil
}

func (w *Workspace) UpdateChannel(id string, patch content.ChannelPatch) (content.Channel, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	ch, found, err := w.store.UpdateChannel(id, patch)
	if err != nil || !found {
		return ch, found, err
	}
	w.persistLocked()
	return ch, true, nil
}

// DeleteChannel removes the channel with its projects and drops selections
// that pointed into them.
func (w *Workspace) DeleteChannel(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	removed, found := w.store.DeleteChannel(id)
	if !found {
		return false
	}
	w.selection.forgetChannel(id, removed)
	w.persistLocked()
	return true
}

func (w *Workspace) AddVideoProject(channelID string, payload content.ProjectPayload) (content.VideoProject, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	project, err := w.store.AddVideoProject(channelID, payload)
	if err != nil {
		return content.VideoProject{}, err
	}
	w.persistLocked()
	return project, nil
}

// ImportProject parses data and attaches the resulting project to channelID.
// Nothing changes when parsing or validation fails.
func (w *Workspace) ImportProject(channelID string, data []byte, format importer.Format) (content.VideoProject, error) {
	payload, err := importer.Parse(data, format, w.now())
	if err != nil {
		return content.VideoProject{}, err
	}
	return w.AddVideoProject(channelID, payload)
}

func (w *Workspace) UpdateVideoProject(id string, patch content.ProjectPatch) (content.VideoProject, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	project, found, err := w.store.UpdateVideoProject(id, patch)
	if err != nil || !found {
		return project, found, err
	}
	if patch.Scenes != nil {
		w.selection.forgetMissingScene(project)
	}
	w.persistLocked()
	return project, true, nil
}

func (w *Workspace) DeleteVideoProject(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.store.DeleteVideoProject(id) {
		return false
	}
	w.selection.forgetProject(id)
	w.persistLocked()
	return true
}

func (w *Workspace) AddScene(projectID string, after *int64) (content.Scene, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	scene, ok := w.store.AddScene(projectID, after)
	if !ok {
		return content.Scene{}, false
	}
	w.persistLocked()
	return scene, true
}

func (w *Workspace) UpdateScene(projectID string, sceneID int64, patch content.ScenePatch) (content.Scene, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	scene, found, err := w.store.UpdateScene(projectID, sceneID, patch)
	if err != nil || !found {
		return scene, found, err
	}
	w.persistLocked()
	return scene, true, nil
}

func (w *Workspace) DeleteScene(projectID string, sceneID int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.store.DeleteScene(projectID, sceneID) {
		return false
	}
	w.selection.forgetScene(content.SceneKey{ProjectID: projectID, SceneID: sceneID})
	w.persistLocked()
	return true
}
