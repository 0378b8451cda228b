package logging

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
)

// jsonTimeFormat keeps millisecond precision; one command can log several
// store mutations within the same second.
const jsonTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// entityKeys are dropped from JSON records when empty, so a record only names
// the entities it is actually about.
var entityKeys = map[string]bool{
	FieldChannelID: true,
	FieldProjectID: true,
	FieldNamespace: true,
}

// newJSONHandler writes one object per record:
//
//	{"ts":"2026-01-02T15:04:05.000Z","level":"info","msg":"channel added","component":"store","channel_id":"canal_01"}
func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   addSource,
		ReplaceAttr: replaceJSONAttr,
	})
}

func replaceJSONAttr(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return attr
	}
	switch attr.Key {
	case slog.TimeKey:
		if attr.Value.Kind() == slog.KindTime {
			return slog.String("ts", attr.Value.Time().UTC().Format(jsonTimeFormat))
		}
		attr.Key = "ts"
	case slog.LevelKey:
		return slog.String("level", strings.ToLower(attr.Value.String()))
	case slog.SourceKey:
		if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
			return slog.String("caller", fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
		}
	default:
		if entityKeys[attr.Key] && attr.Value.Kind() == slog.KindString && attr.Value.String() == "" {
			return slog.Attr{}
		}
	}
	return attr
}
