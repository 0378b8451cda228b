package content

import (
	"fmt"
	"strings"
	"time"
)

// SceneStatus is the production state of one scene.
type SceneStatus string

const (
	StatusIdle    SceneStatus = "idle"
	StatusPending SceneStatus = "pending"
	StatusSuccess SceneStatus = "success"
)

// Valid reports whether s is one of the known statuses.
func (s SceneStatus) Valid() bool {
	switch s {
	case StatusIdle, StatusPending, StatusSuccess:
		return true
	}
	return false
}

// ParseSceneStatus converts user input to a SceneStatus. Empty input yields
// StatusIdle.
func ParseSceneStatus(value string) (SceneStatus, error) {
	trimmed := SceneStatus(strings.ToLower(strings.TrimSpace(value)))
	if trimmed == "" {
		return StatusIdle, nil
	}
	if !trimmed.Valid() {
		return "", invalid("status", fmt.Sprintf("unknown scene status %q", value))
	}
	return trimmed, nil
}

// Channel is a content-producer identity owning zero or more video projects.
type Channel struct {
	ID          string    `json:"id"`
	BannerImage string    `json:"banner_image"`
	AvatarImage string    `json:"avatar_image"`
	Title       string    `json:"title"`
	Contact     string    `json:"contact"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	APIKey      string    `json:"api_key"`
	Language    string    `json:"language"`
	CreatedAt   time.Time `json:"created_at"`
}

// ChannelInput carries every Channel field except the id and timestamp.
type ChannelInput struct {
	BannerImage string `json:"banner_image"`
	AvatarImage string `json:"avatar_image"`
	Title       string `json:"title" validate:"required,notblank"`
	Contact     string `json:"contact" validate:"required,notblank"`
	Description string `json:"description"`
	Category    string `json:"category"`
	APIKey      string `json:"api_key"`
	Language    string `json:"language"`
}

func (c Channel) input() ChannelInput {
	return ChannelInput{
		BannerImage: c.BannerImage,
		AvatarImage: c.AvatarImage,
		Title:       c.Title,
		Contact:     c.Contact,
		Description: c.Description,
		Category:    c.Category,
		APIKey:      c.APIKey,
		Language:    c.Language,
	}
}

// ChannelPatch lists the fields to overwrite; nil fields are left alone.
type ChannelPatch struct {
	BannerImage *string `json:"banner_image,omitempty"`
	AvatarImage *string `json:"avatar_image,omitempty"`
	Title       *string `json:"title,omitempty"`
	Contact     *string `json:"contact,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	APIKey      *string `json:"api_key,omitempty"`
	Language    *string `json:"language,omitempty"`
}

func (p ChannelPatch) apply(c *Channel) {
	setString(&c.BannerImage, p.BannerImage)
	setString(&c.AvatarImage, p.AvatarImage)
	setString(&c.Title, p.Title)
	setString(&c.Contact, p.Contact)
	setString(&c.Description, p.Description)
	setString(&c.Category, p.Category)
	setString(&c.APIKey, p.APIKey)
	setString(&c.Language, p.Language)
}

// ImagePrompts holds the generation prompts for the first and last frame.
type ImagePrompts struct {
	Start string `json:"start_prompt"`
	End   string `json:"end_prompt"`
}

// Speaker is one labeled voice line in a dialogue turn.
type Speaker struct {
	VoiceType string `json:"voice_type"`
	Text      string `json:"text_speaker"`
}

// DialogueTurn carries up to three speakers.
type DialogueTurn struct {
	Speaker1 *Speaker `json:"speaker1,omitempty"`
	Speaker2 *Speaker `json:"speaker2,omitempty"`
	Speaker3 *Speaker `json:"speaker3,omitempty"`
}

// Cut is a named time range inside a video source, e.g. "00:10-00:30".
type Cut struct {
	Part      string `json:"part"`
	TimeRange string `json:"time_range"`
}

// VideoSource references footage used by a scene.
type VideoSource struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Cuts []Cut  `json:"cuts"`
}

// Attachment is a typed reference file (usually an image) for a scene.
type Attachment struct {
	Type        string `json:"type"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Scene is the atomic unit of a project timeline. ID is unique only within
// the owning project.
type Scene struct {
	ID           int64          `json:"id"`
	Status       SceneStatus    `json:"status"`
	Description  string         `json:"scene_description"`
	Prompts      ImagePrompts   `json:"image_prompts"`
	Dialogues    []DialogueTurn `json:"dialogues"`
	VideoSources []VideoSource  `json:"video_sources"`
	Attachments  []Attachment   `json:"attachments"`
}

// ScenePatch lists the scene fields to overwrite. The id is stable and cannot
// be patched. Non-nil slice pointers replace the whole slice.
type ScenePatch struct {
	Status       *SceneStatus    `json:"status,omitempty"`
	Description  *string         `json:"scene_description,omitempty"`
	Prompts      *ImagePrompts   `json:"image_prompts,omitempty"`
	Dialogues    *[]DialogueTurn `json:"dialogues,omitempty"`
	VideoSources *[]VideoSource  `json:"video_sources,omitempty"`
	Attachments  *[]Attachment   `json:"attachments,omitempty"`
}

func (p ScenePatch) validate() error {
	if p.Status != nil && !p.Status.Valid() {
		return invalid("status", fmt.Sprintf("unknown scene status %q", *p.Status))
	}
	return nil
}

func (p ScenePatch) apply(s *Scene) {
	if p.Status != nil {
		s.Status = *p.Status
	}
	setString(&s.Description, p.Description)
	if p.Prompts != nil {
		s.Prompts = *p.Prompts
	}
	if p.Dialogues != nil {
		s.Dialogues = cloneDialogues(*p.Dialogues)
	}
	if p.VideoSources != nil {
		s.VideoSources = cloneSources(*p.VideoSources)
	}
	if p.Attachments != nil {
		s.Attachments = append([]Attachment{}, (*p.Attachments)...)
	}
}

// VideoProject is a planned video made of an ordered scene sequence.
type VideoProject struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ChannelID   string    `json:"channel_id"`
	CreatedAt   time.Time `json:"created_at"`
	Scenes      []Scene   `json:"scenes"`
}

// ProjectPayload is the normalized input for AddVideoProject.
type ProjectPayload struct {
	Title       string
	Description string
	Scenes      []Scene
}

// ProjectPatch lists the top-level project fields to overwrite. A non-nil
// Scenes replaces the whole sequence. The owning channel cannot be patched.
type ProjectPatch struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Scenes      *[]Scene `json:"scenes,omitempty"`
}

// SceneKey addresses a scene by its owning project and project-scoped id.
type SceneKey struct {
	ProjectID string
	SceneID   int64
}

func (k SceneKey) String() string {
	return fmt.Sprintf("%s/%d", k.ProjectID, k.SceneID)
}

func setString(dst *string, value *string) {
	if value != nil {
		*dst = *value
	}
}
