package content_test

import (
	"errors"
	"testing"
	"time"

	"cadence/internal/content"
)

func fixedClock() func() time.Time {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return base }
}

func newTestStore(t *testing.T) *content.Store {
	t.Helper()
	return content.NewStore(content.WithClock(fixedClock()))
}

func mustAddChannel(t *testing.T, store *content.Store, title string) content.Channel {
	t.Helper()
	ch, err := store.AddChannel(content.ChannelInput{Title: title, Contact: title + "@example.com"})
	if err != nil {
		t.Fatalf("AddChannel(%q): %v", title, err)
	}
	return ch
}

func mustAddProject(t *testing.T, store *content.Store, channelID string, payload content.ProjectPayload) content.VideoProject {
	t.Helper()
	p, err := store.AddVideoProject(channelID, payload)
	if err != nil {
		t.Fatalf("AddVideoProject: %v", err)
	}
	return p
}

func scene(id int64, status content.SceneStatus) content.Scene {
	s := content.NewScene(id)
	s.Status = status
	return s
}

func sceneIDs(scenes []content.Scene) []int64 {
	ids := make([]int64, len(scenes))
	for i, s := range scenes {
		ids[i] = s.ID
	}
	return ids
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAddChannelAssignsUniqueIDs(t *testing.T) {
	store := newTestStore(t)

	seen := map[string]struct{}{}
	for i := 0; i < 50; i++ {
		ch := mustAddChannel(t, store, "Channel")
		if ch.ID == "" {
			t.Fatal("expected channel id to be assigned")
		}
		if _, dup := seen[ch.ID]; dup {
			t.Fatalf("duplicate channel id %q", ch.ID)
		}
		seen[ch.ID] = struct{}{}
		if !ch.CreatedAt.Equal(fixedClock()()) {
			t.Fatalf("unexpected creation time %v", ch.CreatedAt)
		}
	}
	if got := len(store.Channels()); got != 50 {
		t.Fatalf("expected 50 channels, got %d", got)
	}
}

func TestAddChannelKeepsInsertionOrder(t *testing.T) {
	store := newTestStore(t)
	first := mustAddChannel(t, store, "First")
	second := mustAddChannel(t, store, "Second")

	channels := store.Channels()
	if len(channels) != 2 || channels[0].ID != first.ID || channels[1].ID != second.ID {
		t.Fatalf("unexpected order: %+v", channels)
	}
}

func TestAddChannelRequiresTitleAndContact(t *testing.T) {
	store := newTestStore(t)
	cases := []struct {
		name  string
		in    content.ChannelInput
		field string
	}{
		{"missing title", content.ChannelInput{Contact: "a@example.com"}, "title"},
		{"missing contact", content.ChannelInput{Title: "Tech"}, "contact"},
		{"blank title", content.ChannelInput{Title: "   ", Contact: "a@example.com"}, "title"},
		{"blank contact", content.ChannelInput{Title: "Tech", Contact: " \t"}, "contact"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.AddChannel(tc.in)
			if !errors.Is(err, content.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			var verr *content.ValidationError
			if !errors.As(err, &verr) || verr.Field != tc.field {
				t.Fatalf("expected field %q, got %#v", tc.field, err)
			}
			if content.Kind(err) != "validation" {
				t.Fatalf("unexpected kind %q", content.Kind(err))
			}
		})
	}
	if got := len(store.Channels()); got != 0 {
		t.Fatalf("store should be unchanged, got %d channels", got)
	}
}

func TestUpdateChannelMergesPatch(t *testing.T) {
	store := newTestStore(t)
	ch := mustAddChannel(t, store, "Tech")

	lang := "EN"
	desc := "gadgets"
	updated, found, err := store.UpdateChannel(ch.ID, content.ChannelPatch{Language: &lang, Description: &desc})
	if err != nil || !found {
		t.Fatalf("UpdateChannel: found=%v err=%v", found, err)
	}
	if updated.Language != "EN" || updated.Description != "gadgets" || updated.Title != "Tech" {
		t.Fatalf("unexpected merge result %+v", updated)
	}
	if updated.ID != ch.ID || !updated.CreatedAt.Equal(ch.CreatedAt) {
		t.Fatal("id and timestamp must not change")
	}
}

func TestUpdateChannelMissingIsNoop(t *testing.T) {
	store := newTestStore(t)
	mustAddChannel(t, store, "Tech")
	title := "Other"
	_, found, err := store.UpdateChannel("canal_missing", content.ChannelPatch{Title: &title})
	if err != nil || found {
		t.Fatalf("expected silent no-op, got found=%v err=%v", found, err)
	}
	if store.Channels()[0].Title != "Tech" {
		t.Fatal("existing channel should be untouched")
	}
}

func TestUpdateChannelRejectsBlankTitle(t *testing.T) {
	store := newTestStore(t)
	ch := mustAddChannel(t, store, "Tech")
	for _, blank := range []string{"", "   "} {
		if _, _, err := store.UpdateChannel(ch.ID, content.ChannelPatch{Title: &blank}); !errors.Is(err, content.ErrValidation) {
			t.Fatalf("title %q: expected validation error, got %v", blank, err)
		}
	}
	got, _ := store.Channel(ch.ID)
	if got.Title != "Tech" {
		t.Fatalf("store should be unchanged, title=%q", got.Title)
	}
}

func TestDeleteChannelCascadesProjects(t *testing.T) {
	store := newTestStore(t)
	keep := mustAddChannel(t, store, "Keep")
	drop := mustAddChannel(t, store, "Drop")
	kept := mustAddProject(t, store, keep.ID, content.ProjectPayload{Title: "Kept"})
	gone1 := mustAddProject(t, store, drop.ID, content.ProjectPayload{Title: "Gone 1", Scenes: []content.Scene{scene(1, content.StatusIdle)}})
	gone2 := mustAddProject(t, store, drop.ID, content.ProjectPayload{Title: "Gone 2"})

	removed, found := store.DeleteChannel(drop.ID)
	if !found {
		t.Fatal("expected channel to be found")
	}
	if len(removed) != 2 || removed[0] != gone1.ID || removed[1] != gone2.ID {
		t.Fatalf("unexpected cascaded ids %v", removed)
	}
	projects := store.Projects()
	if len(projects) != 1 || projects[0].ID != kept.ID {
		t.Fatalf("unexpected remaining projects %+v", projects)
	}
	if _, ok := store.Scene(content.SceneKey{ProjectID: gone1.ID, SceneID: 1}); ok {
		t.Fatal("cascaded project scenes should be gone")
	}

	removed, found = store.DeleteChannel(drop.ID)
	if found || removed != nil {
		t.Fatalf("second delete should be a no-op, got %v %v", removed, found)
	}
	if len(store.Channels()) != 1 || len(store.Projects()) != 1 {
		t.Fatal("no-op delete changed the store")
	}
}

func TestAddVideoProjectRequiresChannel(t *testing.T) {
	store := newTestStore(t)
	_, err := store.AddVideoProject("canal_missing", content.ProjectPayload{Title: "Orphan"})
	if !errors.Is(err, content.ErrReference) {
		t.Fatalf("expected reference error, got %v", err)
	}
	if content.Kind(err) != "reference" {
		t.Fatalf("unexpected kind %q", content.Kind(err))
	}
	if len(store.Projects()) != 0 {
		t.Fatal("store should be unchanged")
	}
}

func TestAddVideoProjectDefaultsTitleAndStatus(t *testing.T) {
	store := newTestStore(t)
	ch := mustAddChannel(t, store, "Tech")
	p := mustAddProject(t, store, ch.ID, content.ProjectPayload{Scenes: []content.Scene{{ID: 7}}})
	if p.Title != content.DefaultProjectTitle {
		t.Fatalf("expected default title, got %q", p.Title)
	}
	if p.ChannelID != ch.ID {
		t.Fatalf("unexpected channel id %q", p.ChannelID)
	}
	if p.Scenes[0].Status != content.StatusIdle {
		t.Fatalf("expected idle default, got %q", p.Scenes[0].Status)
	}
}

func TestAddVideoProjectRejectsMalformedScenes(t *testing.T) {
	store := newTestStore(t)
	ch := mustAddChannel(t, store, "Tech")
	cases := map[string][]content.Scene{
		"duplicate ids":  {scene(1, content.StatusIdle), scene(1, content.StatusSuccess)},
		"missing id":     {scene(0, content.StatusIdle)},
		"unknown status": {scene(1, content.SceneStatus("done"))},
	}
	for name, scenes := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := store.AddVideoProject(ch.ID, content.ProjectPayload{Title: "Bad", Scenes: scenes}); !errors.Is(err, content.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
	if len(store.Projects()) != 0 {
		t.Fatal("store should be unchanged")
	}
}

func TestUpdateVideoProjectReplacesScenesWholesale(t *testing.T) {
	store := newTestStore(t)
	ch := mustAddChannel(t, store, "Tech")
	p := mustAddProject(t, store, ch.ID, content.ProjectPayload{
		Title:  "Tutorial",
		Scenes: []content.Scene{scene(1, content.StatusIdle), scene(2, content.StatusIdle), scene(3, content.StatusIdle)},
	})

	reordered := []content.Scene{scene(3, content.StatusSuccess), scene(1, content.StatusIdle)}
	desc := "reordered"
	updated, found, err := store.UpdateVideoProject(p.ID, content.ProjectPatch{Description: &desc, Scenes: &reordered})
	if err != nil || !found {
		t.Fatalf("UpdateVideoProject: found=%v err=%v", found, err)
	}
	if !equalIDs(sceneIDs(updated.Scenes), []int64{3, 1}) {
		t.Fatalf("expected whole-sequence replacement, got %v", sceneIDs(updated.Scenes))
	}
	if updated.Title != "Tutorial" || updated.Description != "reordered" || updated.ChannelID != ch.ID {
		t.Fatalf("unexpected shallow merge %+v", updated)
	}

	title := "Renamed"
	updated, _, err = store.UpdateVideoProject(p.ID, content.ProjectPatch{Title: &title})
	if err != nil {
		t.Fatalf("UpdateVideoProject: %v", err)
	}
	if !equalIDs(sceneIDs(updated.Scenes), []int64{3, 1}) {
		t.Fatal("patch without scenes must keep the sequence")
	}
}

func TestUpdateVideoProjectValidation(t *testing.T) {
	store := newTestStore(t)
	ch := mustAddChannel(t, store, "Tech")
	p := mustAddProject(t, store, ch.ID, content.ProjectPayload{Title: "Tutorial", Scenes: []content.Scene{scene(1, content.StatusIdle)}})

	dups := []content.Scene{scene(4, content.StatusIdle), scene(4, content.StatusIdle)}
	if _, _, err := store.UpdateVideoProject(p.ID, content.ProjectPatch{Scenes: &dups}); !errors.Is(err, content.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	blank := "  "
	if _, _, err := store.UpdateVideoProject(p.ID, content.ProjectPatch{Title: &blank}); !errors.Is(err, content.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	got, _ := store.Project(p.ID)
	if got.Title != "Tutorial" || !equalIDs(sceneIDs(got.Scenes), []int64{1}) {
		t.Fatalf("store should be unchanged, got %+v", got)
	}

	if _, found, err := store.UpdateVideoProject("project_missing", content.ProjectPatch{Title: &blank}); found || err != nil {
		t.Fatalf("missing project should be a no-op, got found=%v err=%v", found, err)
	}
}

func TestDeleteVideoProject(t *testing.T) {
	store := newTestStore(t)
	ch := mustAddChannel(t, store, "Tech")
	p := mustAddProject(t, store, ch.ID, content.ProjectPayload{Title: "Tutorial"})
	if !store.DeleteVideoProject(p.ID) {
		t.Fatal("expected delete to report the project")
	}
	if store.DeleteVideoProject(p.ID) {
		t.Fatal("second delete should be a no-op")
	}
	if len(store.Channels()) != 1 {
		t.Fatal("deleting a project must not touch its channel")
	}
}

func TestAddScenePlacement(t *testing.T) {
	store := newTestStore(t)
	ch := mustAddChannel(t, store, "Tech")
	p := mustAddProject(t, store, ch.ID, content.ProjectPayload{
		Title:  "Tutorial",
		Scenes: []content.Scene{scene(1, content.StatusSuccess), scene(2, content.StatusSuccess)},
	})

	after := int64(1)
	inserted, ok := store.AddScene(p.ID, &after)
	if !ok {
		t.Fatal("expected AddScene to find the project")
	}
	if inserted.Status != content.StatusIdle || inserted.Description != "" {
		t.Fatalf("unexpected new scene %+v", inserted)
	}
	appended, _ := store.AddScene(p.ID, nil)
	unknown := int64(999)
	fallback, _ := store.AddScene(p.ID, &unknown)

	got, _ := store.Project(p.ID)
	want := []int64{1, inserted.ID, 2, appended.ID, fallback.ID}
	if !equalIDs(sceneIDs(got.Scenes), want) {
		t.Fatalf("unexpected order: got %v want %v", sceneIDs(got.Scenes), want)
	}
	if inserted.ID == appended.ID || appended.ID == fallback.ID || inserted.ID == fallback.ID {
		t.Fatalf("scene ids must be unique: %v", want)
	}

	if _, ok := store.AddScene("project_missing", nil); ok {
		t.Fatal("missing project should be a no-op")
	}
}

func TestUpdateSceneScopedToProject(t *testing.T) {
	store := newTestStore(t)
	ch := mustAddChannel(t, store, "Tech")
	a := mustAddProject(t, store, ch.ID, content.ProjectPayload{Title: "A", Scenes: []content.Scene{scene(1, content.StatusIdle)}})
	b := mustAddProject(t, store, ch.ID, content.ProjectPayload{Title: "B", Scenes: []content.Scene{scene(1, content.StatusIdle)}})

	status := content.StatusSuccess
	desc := "intro"
	sources := []content.VideoSource{{ID: "clip1", URL: "https://example.test/v", Cuts: []content.Cut{{Part: "intro", TimeRange: "00:00-00:30"}}}}
	updated, found, err := store.UpdateScene(a.ID, 1, content.ScenePatch{Status: &status, Description: &desc, VideoSources: &sources})
	if err != nil || !found {
		t.Fatalf("UpdateScene: found=%v err=%v", found, err)
	}
	if updated.Status != content.StatusSuccess || updated.Description != "intro" || len(updated.VideoSources[0].Cuts) != 1 {
		t.Fatalf("unexpected patched scene %+v", updated)
	}

	other, _ := store.Scene(content.SceneKey{ProjectID: b.ID, SceneID: 1})
	if other.Status != content.StatusIdle || other.Description != "" {
		t.Fatalf("scene in other project changed: %+v", other)
	}

	sources[0].URL = "mutated"
	again, _ := store.Scene(content.SceneKey{ProjectID: a.ID, SceneID: 1})
	if again.VideoSources[0].URL != "https://example.test/v" {
		t.Fatal("store must not alias patch slices")
	}
}

func TestUpdateSceneRejectsUnknownStatus(t *testing.T) {
	store := newTestStore(t)
	ch := mustAddChannel(t, store, "Tech")
	p := mustAddProject(t, store, ch.ID, content.ProjectPayload{Title: "A", Scenes: []content.Scene{scene(1, content.StatusIdle)}})
	bad := content.SceneStatus("done")
	if _, _, err := store.UpdateScene(p.ID, 1, content.ScenePatch{Status: &bad}); !errors.Is(err, content.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, found, err := store.UpdateScene(p.ID, 42, content.ScenePatch{Status: &bad}); found || err != nil {
		t.Fatalf("missing scene should be a no-op, got found=%v err=%v", found, err)
	}
}

func TestDeleteSceneKeepsIDs(t *testing.T) {
	store := newTestStore(t)
	ch := mustAddChannel(t, store, "Tech")
	p := mustAddProject(t, store, ch.ID, content.ProjectPayload{
		Title:  "A",
		Scenes: []content.Scene{scene(1, content.StatusIdle), scene(2, content.StatusIdle), scene(3, content.StatusIdle)},
	})
	if !store.DeleteScene(p.ID, 2) {
		t.Fatal("expected scene to be deleted")
	}
	if store.DeleteScene(p.ID, 2) {
		t.Fatal("second delete should be a no-op")
	}
	got, _ := store.Project(p.ID)
	if !equalIDs(sceneIDs(got.Scenes), []int64{1, 3}) {
		t.Fatalf("unexpected remaining ids %v", sceneIDs(got.Scenes))
	}
}

func TestReadersReturnCopies(t *testing.T) {
	store := newTestStore(t)
	ch := mustAddChannel(t, store, "Tech")
	p := mustAddProject(t, store, ch.ID, content.ProjectPayload{Title: "A", Scenes: []content.Scene{scene(1, content.StatusIdle)}})

	projects := store.Projects()
	projects[0].Scenes[0].Status = content.StatusSuccess
	projects[0].Title = "hacked"
	channels := store.Channels()
	channels[0].Title = "hacked"

	got, _ := store.Project(p.ID)
	if got.Title != "A" || got.Scenes[0].Status != content.StatusIdle {
		t.Fatalf("project mutated through reader: %+v", got)
	}
	if store.Channels()[0].Title != "Tech" {
		t.Fatal("channel mutated through reader")
	}
}

func TestProjectsForChannel(t *testing.T) {
	store := newTestStore(t)
	a := mustAddChannel(t, store, "A")
	b := mustAddChannel(t, store, "B")
	p1 := mustAddProject(t, store, a.ID, content.ProjectPayload{Title: "1"})
	mustAddProject(t, store, b.ID, content.ProjectPayload{Title: "2"})
	p3 := mustAddProject(t, store, a.ID, content.ProjectPayload{Title: "3"})

	got := store.ProjectsForChannel(a.ID)
	if len(got) != 2 || got[0].ID != p1.ID || got[1].ID != p3.ID {
		t.Fatalf("unexpected projects %+v", got)
	}
}

func TestRestoreIsAllOrNothing(t *testing.T) {
	store := newTestStore(t)
	mustAddChannel(t, store, "Existing")

	orphan := []content.VideoProject{{ID: "project_1", Title: "x", ChannelID: "canal_missing"}}
	if err := store.Restore(nil, orphan); !errors.Is(err, content.ErrReference) {
		t.Fatalf("expected reference error, got %v", err)
	}
	if len(store.Channels()) != 1 {
		t.Fatal("failed restore must leave the store unchanged")
	}

	channels := []content.Channel{{ID: "canal_1", Title: "T", Contact: "c"}}
	projects := []content.VideoProject{{ID: "project_1", Title: "x", ChannelID: "canal_1", Scenes: []content.Scene{scene(5, content.StatusPending)}}}
	if err := store.Restore(channels, projects); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if len(store.Channels()) != 1 || store.Channels()[0].ID != "canal_1" {
		t.Fatalf("unexpected channels after restore %+v", store.Channels())
	}
	added, _ := store.AddScene("project_1", nil)
	if added.ID == 5 {
		t.Fatal("new scene id collided with restored id")
	}
}
