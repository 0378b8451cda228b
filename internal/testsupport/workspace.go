package testsupport

import (
	"context"
	"testing"

	"cadence/internal/config"
	"cadence/internal/content"
	"cadence/internal/workspace"
)

// MustOpenWorkspace opens a workspace for tests and registers cleanup.
func MustOpenWorkspace(t testing.TB, cfg *config.Config, opts ...workspace.Option) *workspace.Workspace {
	t.Helper()

	ws, err := workspace.Open(context.Background(), cfg, nil, opts...)
	if err != nil {
		t.Fatalf("workspace.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = ws.Close()
	})
	return ws
}

// MustAddChannel creates a channel with the given title and a derived contact.
func MustAddChannel(t testing.TB, ws *workspace.Workspace, title string) content.Channel {
	t.Helper()

	ch, err := ws.AddChannel(content.ChannelInput{Title: title, Contact: title + "@example.com"})
	if err != nil {
		t.Fatalf("AddChannel(%q): %v", title, err)
	}
	return ch
}
