// Package ingest reads a session transcript and classifies its records into
// typed event streams. Parsing is fail-soft: a record that cannot be decoded
// still counts toward the total but contributes no event.
package ingest

import (
	"bufio"
	"fmt"
	"os"

	"github.com/bytedance/sonic"

	"github.com/sotola/codex-context/internal/core/model"
	"github.com/sotola/codex-context/internal/util"
)

// SessionData is the classified view of one transcript: the ordered snapshot
// and turn streams plus the count of all records scanned, including ones
// that matched no known shape.
type SessionData struct {
	Snapshots    []model.Snapshot
	Turns        []model.Turn
	TotalRecords int
}

// ParseSession reads the transcript at path in a single forward pass.
// Position numbering is over all lines, so the total count and the event
// positions always agree.
func ParseSession(path string) (*SessionData, error) {
	util.LogDebugf("Start parsing session: %s", path)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	data := &SessionData{}
	for scanner.Scan() {
		data.TotalRecords++

		var rec model.SessionRecord
		if err := sonic.Unmarshal(scanner.Bytes(), &rec); err != nil {
			util.LogDebugf("Skip invalid JSON line %s:%d - %v", path, data.TotalRecords, err)
			continue
		}
		classify(data, &rec, path)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning session %s: %w", path, err)
	}

	util.LogDebugf("Parsed session %s: %d records, %d snapshots, %d turns",
		path, data.TotalRecords, len(data.Snapshots), len(data.Turns))

	return data, nil
}

func classify(data *SessionData, rec *model.SessionRecord, path string) {
	if rec.Type != model.RecordTypeEvent || rec.Payload == nil {
		return
	}

	switch rec.Payload.Type {
	case model.PayloadTokenCount:
		if rec.Payload.Info == nil {
			return
		}
		ts, err := util.ParseRecordTime(rec.Timestamp)
		if err != nil {
			util.LogDebugf("Skip token_count with bad timestamp %s:%d - %v", path, data.TotalRecords, err)
			return
		}
		info := rec.Payload.Info
		capacity := info.ModelContextWindow
		if capacity == 0 {
			capacity = model.DefaultWindowCapacity
		}
		data.Snapshots = append(data.Snapshots, model.Snapshot{
			Timestamp:        ts,
			Position:         data.TotalRecords,
			WindowTokens:     info.LastTokenUsage.TotalTokens,
			CumulativeTokens: info.TotalTokenUsage.TotalTokens,
			WindowCapacity:   capacity,
		})

	case model.PayloadUserMessage:
		ts, err := util.ParseRecordTime(rec.Timestamp)
		if err != nil {
			util.LogDebugf("Skip user_message with bad timestamp %s:%d - %v", path, data.TotalRecords, err)
			return
		}
		data.Turns = append(data.Turns, model.Turn{
			Timestamp: ts,
			Position:  data.TotalRecords,
			Index:     len(data.Turns) + 1,
			Text:      rec.Payload.Message,
		})
	}
}
