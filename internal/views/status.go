package views

import (
	"math"
	"strings"

	"cadence/internal/content"
)

// ProjectStatus aggregates scene statuses. An empty sequence is pending, a
// sequence of only successes is success, any pending scene makes the whole
// pending, and everything else is idle.
func ProjectStatus(scenes []content.Scene) content.SceneStatus {
	if len(scenes) == 0 {
		return content.StatusPending
	}
	allSuccess := true
	for _, scene := range scenes {
		switch scene.Status {
		case content.StatusPending:
			return content.StatusPending
		case content.StatusSuccess:
		default:
			allSuccess = false
		}
	}
	if allSuccess {
		return content.StatusSuccess
	}
	return content.StatusIdle
}

// Status is ProjectStatus applied to the project's scenes.
func Status(project content.VideoProject) content.SceneStatus {
	return ProjectStatus(project.Scenes)
}

// ProgressSummary counts completed scenes in a project.
type ProgressSummary struct {
	Total     int  `json:"total"`
	Completed int  `json:"completed"`
	Percent   int  `json:"percent"`
	Complete  bool `json:"complete"`
}

// Progress reports how many scenes of project reached success.
func Progress(project content.VideoProject) ProgressSummary {
	summary := ProgressSummary{Total: len(project.Scenes)}
	for _, scene := range project.Scenes {
		if scene.Status == content.StatusSuccess {
			summary.Completed++
		}
	}
	if summary.Total > 0 {
		summary.Percent = int(math.Round(float64(summary.Completed) * 100 / float64(summary.Total)))
		summary.Complete = summary.Completed == summary.Total
	}
	return summary
}

// Action is the navigation target offered for a project.
type Action string

const (
	ActionView Action = "view"
	ActionEdit Action = "edit"
)

// ProjectAction returns ActionView for finished projects and ActionEdit
// otherwise.
func ProjectAction(project content.VideoProject) Action {
	if Status(project) == content.StatusSuccess {
		return ActionView
	}
	return ActionEdit
}

// ShareURL joins base and the project id.
func ShareURL(base, projectID string) string {
	return strings.TrimRight(base, "/") + "/" + projectID
}
