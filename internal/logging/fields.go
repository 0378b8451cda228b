package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType classifies a log line for filtering (e.g. "state_load_failed").
	FieldEventType = "event_type"
	// FieldErrorHint carries the next step an operator should take.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldChannelID identifies a channel.
	FieldChannelID = "channel_id"
	// FieldProjectID identifies a video project.
	FieldProjectID = "project_id"
	// FieldSceneID identifies a scene within its project.
	FieldSceneID = "scene_id"
	// FieldNamespace is the persisted record key.
	FieldNamespace = "namespace"
	// FieldBackend names the storage backend in use.
	FieldBackend = "backend"
	// FieldRunID is injected into every record of one CLI invocation.
	FieldRunID = "run_id"
)
