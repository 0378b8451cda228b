package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"cadence/internal/config"
	"cadence/internal/content"
	"cadence/internal/importer"
	"cadence/internal/testsupport"
)

func TestGuardedCommandsRequireCredentials(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"channel", "list"}, env.configPath)
	if !errors.Is(err, errAuthRequired) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if exitCode(err) != 3 {
		t.Fatalf("unexpected exit code %d", exitCode(err))
	}

	_, _, err = runCLI(t, []string{"--user", "angel", "--password", "wrong", "channel", "list"}, env.configPath)
	if !errors.Is(err, errAuthRequired) {
		t.Fatalf("expected auth error for wrong password, got %v", err)
	}

	t.Setenv(envUser, "angel")
	t.Setenv(envPassword, "ingeniero89")
	out, _, err := runCLI(t, []string{"channel", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("env credentials should pass the guard: %v", err)
	}
	requireContains(t, out, "No channels match")
}

func TestSessionCheckPrintsIdentity(t *testing.T) {
	env := setupCLITestEnv(t)
	out := env.run(t, "session", "check")
	requireContains(t, out, "authenticated")
	requireContains(t, out, "demo@google.com")
}

func TestChannelProjectSceneFlow(t *testing.T) {
	env := setupCLITestEnv(t)

	var ch content.Channel
	env.runJSON(t, &ch, "channel", "add", "--title", "Tech News", "--contact", "tech@example.com", "--category", "Tech", "--language", "ES")
	if ch.ID == "" || ch.Title != "Tech News" {
		t.Fatalf("unexpected channel %+v", ch)
	}

	payloadPath := filepath.Join(env.baseDir, "project.json")
	testsupport.WriteFile(t, payloadPath, importer.SampleJSON())
	var project content.VideoProject
	env.runJSON(t, &project, "project", "import", ch.ID, payloadPath)
	if project.ChannelID != ch.ID || len(project.Scenes) != 1 {
		t.Fatalf("unexpected project %+v", project)
	}

	var added content.Scene
	env.runJSON(t, &added, "scene", "add", project.ID, "--after", "1")
	if added.Status != content.StatusIdle {
		t.Fatalf("unexpected new scene %+v", added)
	}
	env.run(t, "scene", "update", project.ID, "1", "--status", "success", "--start-prompt", "sunrise")
	env.run(t, "scene", "update", project.ID, strconv.FormatInt(added.ID, 10), "--status", "success")

	var shown struct {
		content.VideoProject
		Summary projectSummary `json:"summary"`
	}
	env.runJSON(t, &shown, "project", "show", project.ID)
	if shown.Summary.Status != content.StatusSuccess || shown.Summary.Action != "view" || !shown.Summary.Progress.Complete {
		t.Fatalf("unexpected summary %+v", shown.Summary)
	}
	if shown.Scenes[0].Prompts.Start != "sunrise" || shown.Scenes[1].ID != added.ID {
		t.Fatalf("unexpected scenes %+v", shown.Scenes)
	}
	requireContains(t, env.run(t, "project", "share", project.ID), "https://clipcadence.app/watch/"+project.ID)

	table := env.run(t, "project", "show", project.ID)
	requireContains(t, table, "Share:")
	requireContains(t, table, "2/2 scenes done")

	out := env.run(t, "channel", "delete", ch.ID)
	requireContains(t, out, "1 project(s)")
	requireContains(t, env.run(t, "project", "list"), "No projects")
	requireContains(t, env.run(t, "channel", "delete", ch.ID), "nothing changed")
}

func TestImportErrorsMapToExitCodes(t *testing.T) {
	env := setupCLITestEnv(t)
	var ch content.Channel
	env.runJSON(t, &ch, "channel", "add", "--title", "Tech", "--contact", "t@example.com")

	bad := filepath.Join(env.baseDir, "bad.json")
	testsupport.WriteFile(t, bad, []byte(`{"description":"missing title"}`))
	_, _, err := runCLI(t, []string{"--user", "angel", "--password", "ingeniero89", "project", "import", ch.ID, bad}, env.configPath)
	if !errors.Is(err, content.ErrValidation) || exitCode(err) != 2 {
		t.Fatalf("expected validation error with exit code 2, got %v (%d)", err, exitCode(err))
	}

	testsupport.WriteFile(t, bad, []byte(`{broken`))
	_, _, err = runCLI(t, []string{"--user", "angel", "--password", "ingeniero89", "project", "import", ch.ID, bad}, env.configPath)
	if !errors.Is(err, content.ErrFormat) {
		t.Fatalf("expected format error, got %v", err)
	}

	_, _, err = runCLI(t, []string{"--user", "angel", "--password", "ingeniero89", "channel", "add", "--title", "No contact"}, env.configPath)
	if !errors.Is(err, content.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestChannelListFiltersAndPages(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithPageSize(1))
	env.run(t, "channel", "add", "--title", "Tech News", "--contact", "a@example.com", "--category", "Tech", "--language", "ES")
	env.run(t, "channel", "add", "--title", "Cooking", "--contact", "b@example.com", "--category", "Food", "--language", "EN")

	var page struct {
		Items      []content.Channel `json:"items"`
		Number     int               `json:"number"`
		TotalPages int               `json:"total_pages"`
		Total      int               `json:"total"`
	}
	env.runJSON(t, &page, "channel", "list", "--search", "tech", "--category", "all", "--language", "all")
	if page.Total != 1 || page.Items[0].Title != "Tech News" {
		t.Fatalf("unexpected filtered page %+v", page)
	}
	env.runJSON(t, &page, "channel", "list", "--page", "2")
	if page.Number != 2 || page.TotalPages != 2 || page.Items[0].Title != "Cooking" {
		t.Fatalf("unexpected second page %+v", page)
	}
	requireContains(t, env.run(t, "channel", "list"), "Page 1 of 2")
}

func TestViewModePersistsAcrossRuns(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithBackend(config.BackendSQLite))
	requireContains(t, env.run(t, "view"), "View mode: grid")
	requireContains(t, env.run(t, "view", "list"), "View mode: list")
	requireContains(t, env.run(t, "view"), "View mode: list")

	_, _, err := runCLI(t, []string{"--user", "angel", "--password", "ingeniero89", "view", "carousel"}, env.configPath)
	if !errors.Is(err, content.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestStorageHealthAndSample(t *testing.T) {
	env := setupCLITestEnv(t)
	requireContains(t, env.run(t, "storage", "health"), "none stored yet")
	env.run(t, "channel", "add", "--title", "Tech", "--contact", "t@example.com")
	out := env.run(t, "storage", "health")
	requireContains(t, out, "[OK]")
	requireContains(t, out, "Channels:")

	sample, _, err := runCLI(t, []string{"project", "sample"}, "")
	if err != nil {
		t.Fatalf("project sample should not need config or credentials: %v", err)
	}
	requireContains(t, sample, `"scenes"`)
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(env.baseDir, "generated", "config.toml")

	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, target)
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file: %v", err)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected refusal to overwrite")
	}

	out, _, err = runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, env.cfg.StatePath())

	out, _, err = runCLI(t, []string{"--json", "config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate --json: %v", err)
	}
	var report configReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if !report.Exists || report.Backend != env.cfg.Storage.Backend || report.StatePath != env.cfg.StatePath() || report.PageSize != env.cfg.Views.PageSize {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestJSONReportsMissingAndDeletedTargets(t *testing.T) {
	env := setupCLITestEnv(t)
	var ch content.Channel
	env.runJSON(t, &ch, "channel", "add", "--title", "Tech", "--contact", "t@example.com")

	cases := [][]string{
		{"channel", "update", "canal_gone", "--title", "x"},
		{"channel", "delete", "canal_gone"},
		{"project", "update", "project_gone", "--title", "x"},
		{"project", "delete", "project_gone"},
		{"scene", "add", "project_gone"},
		{"scene", "update", "project_gone", "3", "--status", "success"},
		{"scene", "delete", "project_gone", "3"},
	}
	for _, args := range cases {
		var result changeResult
		env.runJSON(t, &result, args...)
		if result.Found || result.ID == "" || result.Entity == "" {
			t.Fatalf("%v: unexpected result %+v", args, result)
		}
	}

	var deleted changeResult
	env.runJSON(t, &deleted, "channel", "delete", ch.ID)
	if !deleted.Found || deleted.Entity != "channel" || deleted.ID != ch.ID || deleted.Cascaded == nil || *deleted.Cascaded != 0 {
		t.Fatalf("unexpected delete result %+v", deleted)
	}
}

func TestReportErrorWritesJSONEnvelope(t *testing.T) {
	root := newRootCommand()
	if err := root.PersistentFlags().Set("json", "true"); err != nil {
		t.Fatalf("set --json: %v", err)
	}
	var buf bytes.Buffer
	reportError(root, &buf, &content.ValidationError{Field: "title", Reason: "payload must include a title"})

	var result errorResult
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if result.Kind != "validation" || result.ExitCode != 2 || result.Error == "" {
		t.Fatalf("unexpected envelope %+v", result)
	}

	buf.Reset()
	reportError(root, &buf, errAuthRequired)
	result = errorResult{}
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if result.Kind != "auth" || result.ExitCode != 3 {
		t.Fatalf("unexpected auth envelope %+v", result)
	}

	plain := newRootCommand()
	buf.Reset()
	reportError(plain, &buf, errors.New("boom"))
	if buf.String() != "boom\n" {
		t.Fatalf("expected plain message, got %q", buf.String())
	}
}
