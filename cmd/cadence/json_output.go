package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"cadence/internal/content"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	return encodeJSON(cmd.OutOrStdout(), v)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// changeResult is the --json body of update and delete commands. Found is
// false when the target was already gone and nothing changed.
type changeResult struct {
	Found    bool   `json:"found"`
	Entity   string `json:"entity"`
	ID       string `json:"id"`
	Cascaded *int   `json:"cascaded_projects,omitempty"`
}

// errorResult is written to stderr for failed commands run with --json.
type errorResult struct {
	Error    string `json:"error"`
	Kind     string `json:"kind,omitempty"`
	ExitCode int    `json:"exit_code"`
}

// reportMissing tells the operator the target does not exist. The command
// still succeeds because missing targets are no-ops.
func (c *commandContext) reportMissing(cmd *cobra.Command, entity, id string) error {
	if c.jsonOutput() {
		return writeJSON(cmd, changeResult{Found: false, Entity: entity, ID: id})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s not found; nothing changed\n", capitalize(entity), id)
	return nil
}

// reportDeleted confirms a delete. cascaded is nil for entities that own no
// projects.
func (c *commandContext) reportDeleted(cmd *cobra.Command, entity, id string, cascaded *int) error {
	if c.jsonOutput() {
		return writeJSON(cmd, changeResult{Found: true, Entity: entity, ID: id, Cascaded: cascaded})
	}
	out := cmd.OutOrStdout()
	if cascaded != nil {
		fmt.Fprintf(out, "Deleted %s %s and %d project(s)\n", entity, id, *cascaded)
		return nil
	}
	fmt.Fprintf(out, "Deleted %s %s\n", entity, id)
	return nil
}

// reportError prints err for the operator, as an errorResult when the
// invocation asked for JSON.
func reportError(root *cobra.Command, w io.Writer, err error) {
	asJSON, _ := root.PersistentFlags().GetBool("json")
	if !asJSON {
		fmt.Fprintln(w, err)
		return
	}
	kind := content.Kind(err)
	if errors.Is(err, errAuthRequired) {
		kind = "auth"
	}
	if encErr := encodeJSON(w, errorResult{Error: err.Error(), Kind: kind, ExitCode: exitCode(err)}); encErr != nil {
		fmt.Fprintln(w, err)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
