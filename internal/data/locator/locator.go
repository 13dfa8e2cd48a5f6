// Package locator resolves selection criteria into ordered lists of session
// transcript files under an injected sessions root.
package locator

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/sotola/codex-context/internal/core/model"
	"github.com/sotola/codex-context/internal/util"
)

// NotFoundError reports a selection criterion that resolved to no sessions.
type NotFoundError struct {
	Criterion string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no session files found for %s", e.Criterion)
}

// SessionInfo describes one discovered session file.
type SessionInfo struct {
	Path      string
	SessionID string // empty if no UUID is embedded in the filename
	Modified  time.Time
}

var sessionIDPattern = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)

// ExtractSessionID pulls a session UUID out of a transcript filename.
func ExtractSessionID(name string) string {
	candidate := sessionIDPattern.FindString(name)
	if candidate == "" {
		return ""
	}
	id, err := uuid.Parse(candidate)
	if err != nil {
		return ""
	}
	return id.String()
}

// Locator finds session files under a fixed root. The root is injected,
// never read from ambient state.
type Locator struct {
	root string
}

func New(root string) *Locator {
	return &Locator{root: root}
}

// Root returns the sessions root this locator scans.
func (l *Locator) Root() string {
	return l.root
}

// listAll walks the root and returns every .jsonl session file.
func (l *Locator) listAll() ([]SessionInfo, error) {
	start := time.Now()
	if _, err := os.Stat(l.root); err != nil {
		return nil, fmt.Errorf("sessions directory not found: %s: %w", l.root, err)
	}

	var sessions []SessionInfo
	err := filepath.Walk(l.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			util.LogDebugf("Skip path (error): %s - %v", path, err)
			return nil
		}
		if info.IsDir() || !strings.HasSuffix(strings.ToLower(path), ".jsonl") {
			return nil
		}
		sessions = append(sessions, SessionInfo{
			Path:      path,
			SessionID: ExtractSessionID(info.Name()),
			Modified:  info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	util.LogDebugf("Session scan completed: duration %v, found %d session files",
		time.Since(start), len(sessions))
	return sessions, nil
}

// ByID finds sessions whose filename contains the given UUID or fragment,
// oldest first so batch analysis runs chronologically.
func (l *Locator) ByID(fragment string) ([]SessionInfo, error) {
	all, err := l.listAll()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(fragment)
	var matches []SessionInfo
	for _, s := range all {
		if strings.Contains(strings.ToLower(filepath.Base(s.Path)), needle) {
			matches = append(matches, s)
		}
	}
	if len(matches) == 0 {
		return nil, &NotFoundError{Criterion: fmt.Sprintf("session ID %q", fragment)}
	}

	sortByModTime(matches, false)
	return matches, nil
}

// Latest returns the n most recently modified session files, oldest first.
func (l *Locator) Latest(n int) ([]SessionInfo, error) {
	all, err := l.listAll()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, &NotFoundError{Criterion: fmt.Sprintf("latest %d sessions", n)}
	}

	sortByModTime(all, true)
	if len(all) > n {
		all = all[:n]
	}
	sortByModTime(all, false)
	return all, nil
}

// ForDay returns one session file per session UUID from the day's
// YYYY/MM/DD subdirectory, keeping the newest file for each UUID.
func (l *Locator) ForDay(day string) ([]SessionInfo, error) {
	dayTime, err := util.ParseFlexibleTime(day)
	if err != nil {
		return nil, fmt.Errorf("invalid day %q: expected YYYY-MM-DD or YYYY_MM_DD", day)
	}

	dayDir := filepath.Join(l.root,
		fmt.Sprintf("%04d", dayTime.Year()),
		fmt.Sprintf("%02d", int(dayTime.Month())),
		fmt.Sprintf("%02d", dayTime.Day()))
	if _, err := os.Stat(dayDir); err != nil {
		return nil, &NotFoundError{Criterion: fmt.Sprintf("day %s (%s)", day, dayDir)}
	}

	byID := make(map[string]SessionInfo)
	err = filepath.Walk(dayDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || !strings.HasSuffix(strings.ToLower(path), ".jsonl") {
			return nil
		}
		id := ExtractSessionID(info.Name())
		if id == "" {
			return nil
		}
		if existing, ok := byID[id]; !ok || info.ModTime().After(existing.Modified) {
			byID[id] = SessionInfo{Path: path, SessionID: id, Modified: info.ModTime()}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(byID) == 0 {
		return nil, &NotFoundError{Criterion: fmt.Sprintf("day %s", day)}
	}

	sessions := make([]SessionInfo, 0, len(byID))
	for _, s := range byID {
		sessions = append(sessions, s)
	}
	sortByModTime(sessions, false)
	return sessions, nil
}

// Since returns sessions containing at least one event record at or after
// the given instant, oldest first. Records are probed field-by-field
// without decoding whole lines.
func (l *Locator) Since(since string) ([]SessionInfo, error) {
	sinceTime, err := util.ParseFlexibleTime(since)
	if err != nil {
		return nil, err
	}

	all, err := l.listAll()
	if err != nil {
		return nil, err
	}

	cutoff := sinceTime.Format("2006-01-02T15:04:05")
	var matches []SessionInfo
	for _, s := range all {
		count, err := countEventsSince(s.Path, cutoff)
		if err != nil {
			util.LogDebugf("Skip unreadable session %s: %v", s.Path, err)
			continue
		}
		if count > 0 {
			matches = append(matches, s)
		}
	}
	if len(matches) == 0 {
		return nil, &NotFoundError{Criterion: fmt.Sprintf("sessions since %s", since)}
	}

	sortByModTime(matches, false)
	return matches, nil
}

// countEventsSince counts event_msg records with a timestamp at or after
// the cutoff. Transcript timestamps share a fixed lexicographic layout, so
// a string compare suffices.
func countEventsSince(path, cutoff string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	count := 0
	for scanner.Scan() {
		line := scanner.Bytes()
		if gjson.GetBytes(line, "type").String() != model.RecordTypeEvent {
			continue
		}
		ts := gjson.GetBytes(line, "timestamp").String()
		if ts != "" && strings.TrimSuffix(ts, "Z") >= cutoff {
			count++
		}
	}
	return count, scanner.Err()
}

// ModifiedWithin lists sessions touched within the last given duration,
// most recent first. Listing only; no analysis runs on the result.
func (l *Locator) ModifiedWithin(window time.Duration) ([]SessionInfo, error) {
	all, err := l.listAll()
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-window)
	var recent []SessionInfo
	for _, s := range all {
		if !s.Modified.Before(cutoff) {
			recent = append(recent, s)
		}
	}

	sortByModTime(recent, true)
	return recent, nil
}

func sortByModTime(sessions []SessionInfo, newestFirst bool) {
	sort.Slice(sessions, func(i, j int) bool {
		if newestFirst {
			return sessions[i].Modified.After(sessions[j].Modified)
		}
		return sessions[i].Modified.Before(sessions[j].Modified)
	})
}
