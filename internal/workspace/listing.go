package workspace

import (
	"cadence/internal/content"
	"cadence/internal/views"
)

// Filter returns the current channel filter.
func (w *Workspace) Filter() views.Filter {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.filter
}

// SetSearchTerm changes the free-text term and returns to page 1.
func (w *Workspace) SetSearchTerm(term string) {
	w.updateFilter(func(f *views.Filter) { f.Term = term })
}

// SetCategory changes the category filter and returns to page 1.
func (w *Workspace) SetCategory(category string) {
	w.updateFilter(func(f *views.Filter) { f.Category = category })
}

// SetLanguage changes the language filter and returns to page 1.
func (w *Workspace) SetLanguage(language string) {
	w.updateFilter(func(f *views.Filter) { f.Language = language })
}

// SetFilter replaces the whole filter and returns to page 1.
func (w *Workspace) SetFilter(filter views.Filter) {
	w.updateFilter(func(f *views.Filter) { *f = filter })
}

func (w *Workspace) updateFilter(change func(*views.Filter)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	change(&w.filter)
	w.page = 1
}

// CurrentPage returns the 1-indexed listing page.
func (w *Workspace) CurrentPage() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.page
}

// SetCurrentPage moves to page n, clamped to at least 1.
func (w *Workspace) SetCurrentPage(n int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.page = max(n, 1)
}

// ChannelPage returns the current page of filtered channels.
func (w *Workspace) ChannelPage() views.Page[content.Channel] {
	w.mu.Lock()
	filter, page := w.filter, w.page
	w.mu.Unlock()
	return views.Paginate(views.FilterChannels(w.store.Channels(), filter), page, w.pageSize)
}

// ViewMode returns the persisted layout preference.
func (w *Workspace) ViewMode() views.ViewMode {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.viewMode
}

// SetViewMode accepts "grid" or "list" and persists the choice.
func (w *Workspace) SetViewMode(value string) error {
	mode, err := views.ParseViewMode(value)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if mode == w.viewMode {
		return nil
	}
	w.viewMode = mode
	w.persistLocked()
	return nil
}

// ProjectStatus is the aggregate status of a project.
func (w *Workspace) ProjectStatus(id string) (content.SceneStatus, bool) {
	project, ok := w.store.Project(id)
	if !ok {
		return "", false
	}
	return views.Status(project), true
}

// Progress summarizes completed scenes of a project.
func (w *Workspace) Progress(id string) (views.ProgressSummary, bool) {
	project, ok := w.store.Project(id)
	if !ok {
		return views.ProgressSummary{}, false
	}
	return views.Progress(project), true
}

// ShareURL returns the share link for an existing project.
func (w *Workspace) ShareURL(id string) (string, bool) {
	if _, ok := w.store.Project(id); !ok {
		return "", false
	}
	return views.ShareURL(w.shareBase, id), true
}
