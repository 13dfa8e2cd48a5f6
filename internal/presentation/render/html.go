// Package render turns a metrics view into a standalone HTML chart page:
// context-window and cumulative-token charts with user turns overlaid, plus
// a chat pane of the session's user messages.
package render

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/sotola/codex-context/internal/core/metrics"
	"github.com/sotola/codex-context/internal/util"
)

// Options controls presentation, not content.
type Options struct {
	// TimeAxis selects a wall-clock horizontal axis as the initial mode;
	// the page can toggle between position-indexed and time-indexed either
	// way.
	TimeAxis bool
}

type Renderer struct {
	opts Options
}

func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// point is one chart sample. X is either an epoch-ms timestamp or a log
// position depending on the dataset.
type point struct {
	X int64 `json:"x"`
	Y int   `json:"y"`
}

// turnPoint is one user-turn scatter marker, carrying both axis coordinates
// so the page can retarget datasets when the axis mode toggles.
type turnPoint struct {
	X        int64  `json:"x"`
	Y        int    `json:"y"`
	XTime    int64  `json:"xTime"`
	XPos     int    `json:"xPos"`
	Index    int    `json:"index"`
	Position int    `json:"position"`
	Message  string `json:"message"`
	Cost     int    `json:"cost"`
	Duration string `json:"duration"`
}

type messageCard struct {
	Index      int
	Position   int
	Text       string
	Time       string
	DateShort  string
	DateFull   string
	TsMs       int64
	Context    int
	Cumulative int
	Cost       int
	Duration   string
}

type pageData struct {
	SessionID string
	DateRange string
	TimeAxis  bool

	SnapshotCount int
	TurnCount     int
	TotalRecords  int
	FinalContext  int
	FinalTotal    int
	Capacity      int
	UsagePercent  float64

	Cards []messageCard

	ContextTimeJSON    template.JS
	ContextPosJSON     template.JS
	CumulativeTimeJSON template.JS
	CumulativePosJSON  template.JS
	TurnsContextJSON   template.JS
	TurnsTotalJSON     template.JS
	PositionTimeJSON   template.JS
}

var funcMap = template.FuncMap{
	"fmtTokens": func(n int) string {
		return groupDigits(n)
	},
	"fmtPercent": func(p float64) string {
		return fmt.Sprintf("%.1f%%", p)
	},
}

var chartTmpl = template.Must(template.New("chart").Funcs(funcMap).Parse(chartPage))

// Render writes the chart page for one session view.
func (r *Renderer) Render(v *metrics.View, sessionID string, w io.Writer) error {
	data, err := r.buildPageData(v, sessionID)
	if err != nil {
		return err
	}
	return chartTmpl.Execute(w, data)
}

// RenderFile renders into path, creating or truncating it.
func (r *Renderer) RenderFile(v *metrics.View, sessionID, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create artifact %s: %w", path, err)
	}
	defer file.Close()

	if err := r.Render(v, sessionID, file); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	return nil
}

func (r *Renderer) buildPageData(v *metrics.View, sessionID string) (*pageData, error) {
	contextTime := make([]point, 0, len(v.Snapshots))
	contextPos := make([]point, 0, len(v.Snapshots))
	cumulativeTime := make([]point, 0, len(v.Snapshots))
	cumulativePos := make([]point, 0, len(v.Snapshots))
	for _, s := range v.Snapshots {
		contextTime = append(contextTime, point{X: s.Timestamp, Y: s.WindowTokens})
		contextPos = append(contextPos, point{X: int64(s.Position), Y: s.WindowTokens})
		cumulativeTime = append(cumulativeTime, point{X: s.Timestamp, Y: s.CumulativeTokens})
		cumulativePos = append(cumulativePos, point{X: int64(s.Position), Y: s.CumulativeTokens})
	}

	turnsContext := make([]turnPoint, 0, len(v.Turns))
	turnsTotal := make([]turnPoint, 0, len(v.Turns))
	cards := make([]messageCard, 0, len(v.Turns))
	for _, t := range v.Turns {
		x := int64(t.Position)
		if r.opts.TimeAxis {
			x = t.Timestamp
		}
		duration := util.FormatTurnDuration(t.DurationMs)
		base := turnPoint{
			X:        x,
			XTime:    t.Timestamp,
			XPos:     t.Position,
			Index:    t.Index,
			Position: t.Position,
			Message:  util.TruncateMiddle(t.Text, 400),
			Cost:     t.CostTokens,
			Duration: duration,
		}

		ctxPt := base
		ctxPt.Y = t.ContextAtStart
		turnsContext = append(turnsContext, ctxPt)

		totPt := base
		totPt.Y = t.CumulativeAtStart
		turnsTotal = append(turnsTotal, totPt)

		when := time.UnixMilli(t.Timestamp)
		cards = append(cards, messageCard{
			Index:      t.Index,
			Position:   t.Position,
			Text:       util.TruncateMiddle(t.Text, 400),
			Time:       when.Format("15:04:05"),
			DateShort:  when.Format("Jan 02"),
			DateFull:   when.Format("2006_01_02"),
			TsMs:       t.Timestamp,
			Context:    t.ContextAtStart,
			Cumulative: t.CumulativeAtStart,
			Cost:       t.CostTokens,
			Duration:   duration,
		})
	}
	// Chat pane shows the most recent message first.
	sort.SliceStable(cards, func(i, j int) bool { return cards[i].Index > cards[j].Index })

	// Tick labels for the position axis come from the interpolated map.
	positionTime := make(map[string]string, len(v.PositionTime))
	for pos, ts := range v.PositionTime {
		positionTime[strconv.Itoa(pos)] = util.FormatRecordTime(ts)
	}

	data := &pageData{
		SessionID:     sessionID,
		DateRange:     dateRange(v),
		TimeAxis:      r.opts.TimeAxis,
		SnapshotCount: len(v.Snapshots),
		TurnCount:     len(v.Turns),
		TotalRecords:  v.TotalRecords,
		FinalContext:  v.FinalWindowTokens,
		FinalTotal:    v.FinalCumulativeTokens,
		Capacity:      v.WindowCapacity,
		UsagePercent:  v.UsagePercent,
		Cards:         cards,
	}

	for _, blob := range []struct {
		dst *template.JS
		src interface{}
	}{
		{&data.ContextTimeJSON, contextTime},
		{&data.ContextPosJSON, contextPos},
		{&data.CumulativeTimeJSON, cumulativeTime},
		{&data.CumulativePosJSON, cumulativePos},
		{&data.TurnsContextJSON, turnsContext},
		{&data.TurnsTotalJSON, turnsTotal},
		{&data.PositionTimeJSON, positionTime},
	} {
		js, err := marshalJS(blob.src)
		if err != nil {
			return nil, err
		}
		*blob.dst = js
	}

	return data, nil
}

// marshalJS encodes a dataset for embedding inside a <script> block.
func marshalJS(v interface{}) (template.JS, error) {
	data, err := sonic.Marshal(v)
	if err != nil {
		return "", err
	}
	// Message text is attacker-ish input; keep a closing script tag from
	// terminating the block early.
	safe := strings.ReplaceAll(string(data), "</", "<\\/")
	return template.JS(safe), nil
}

func dateRange(v *metrics.View) string {
	if len(v.Snapshots) == 0 {
		return ""
	}
	first := time.UnixMilli(v.Snapshots[0].Timestamp).Format("2006_01_02")
	last := time.UnixMilli(v.Snapshots[len(v.Snapshots)-1].Timestamp).Format("2006_01_02")
	if first == last {
		return first
	}
	return first + " → " + last
}

func groupDigits(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
