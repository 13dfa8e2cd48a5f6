// Package fixtures generates synthetic Codex session transcripts for tests.
package fixtures

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/sotola/codex-context/internal/core/model"
)

// TokenCountLine builds one token_count transcript line.
func TokenCountLine(ts string, cumulative, window, capacity int) string {
	rec := model.SessionRecord{
		Timestamp: ts,
		Type:      model.RecordTypeEvent,
		Payload: &model.EventPayload{
			Type: model.PayloadTokenCount,
			Info: &model.TokenInfo{
				TotalTokenUsage:    model.TokenUsage{TotalTokens: cumulative},
				LastTokenUsage:     model.TokenUsage{TotalTokens: window},
				ModelContextWindow: capacity,
			},
		},
	}
	data, _ := sonic.Marshal(rec)
	return string(data)
}

// UserMessageLine builds one user_message transcript line.
func UserMessageLine(ts, message string) string {
	rec := model.SessionRecord{
		Timestamp: ts,
		Type:      model.RecordTypeEvent,
		Payload: &model.EventPayload{
			Type:    model.PayloadUserMessage,
			Message: message,
		},
	}
	data, _ := sonic.Marshal(rec)
	return string(data)
}

// OtherLine builds a structurally valid record of a shape the ingestor
// ignores.
func OtherLine(ts, recordType string) string {
	rec := model.SessionRecord{Timestamp: ts, Type: recordType}
	data, _ := sonic.Marshal(rec)
	return string(data)
}

// Generator writes session files under a base directory, creating parent
// directories as needed.
type Generator struct {
	baseDir string
}

func NewGenerator(baseDir string) *Generator {
	return &Generator{baseDir: baseDir}
}

// WriteSession writes the given transcript lines to relPath under the base
// directory and returns the absolute path.
func (g *Generator) WriteSession(relPath string, lines []string) (string, error) {
	path := filepath.Join(g.baseDir, relPath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}
