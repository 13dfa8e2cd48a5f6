package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sotola/codex-context/internal/config"
	"github.com/sotola/codex-context/internal/core/correlate"
	"github.com/sotola/codex-context/internal/core/ingest"
	"github.com/sotola/codex-context/internal/core/metrics"
	"github.com/sotola/codex-context/internal/data/locator"
	"github.com/sotola/codex-context/internal/presentation/launch"
	"github.com/sotola/codex-context/internal/presentation/render"
	"github.com/sotola/codex-context/internal/util"
)

var (
	latestN    int
	dayFlag    string
	sinceFlag  string
	hoursFlag  float64
	timeAxis   bool
	outputDir  string
	sessionDir string
	configPath string
	noOpen     bool
	debugMode  bool
)

var rootCmd = &cobra.Command{
	Use:   "codex-context [session-path-or-id]",
	Short: "Chart context-window usage across a Codex session",
	Long: `Analyze Codex session transcripts and render interactive HTML charts of
context-window usage, cumulative token consumption, and per-turn cost.

Sessions can be selected by file path, by session UUID (or a fragment of
one), by recency (--latest), by day (--day), or by activity (--since).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.Flags().IntVarP(&latestN, "latest", "l", 0, "Analyze the N most recent sessions")
	rootCmd.Flags().StringVar(&dayFlag, "day", "", "Analyze all sessions from a day (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&sinceFlag, "since", "", "Analyze sessions with activity since a time (YYYY-MM-DD [HH:MM])")
	rootCmd.Flags().Float64Var(&hoursFlag, "hours", 0, "List sessions modified within the last N hours")
	rootCmd.Flags().BoolVarP(&timeAxis, "time-axis", "t", false, "Start charts on the wall-clock axis instead of log position")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for generated HTML artifacts")
	rootCmd.Flags().StringVarP(&sessionDir, "dir", "d", "", "Sessions root directory to scan")
	rootCmd.Flags().StringVar(&configPath, "config", "", "Config file path (default ~/.codex-context/config.yaml)")
	rootCmd.Flags().BoolVar(&noOpen, "no-open", false, "Do not open generated artifacts in the browser")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to console")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if err := initLogging(); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	root := cfg.SessionsRoot
	if sessionDir != "" {
		root = expandPath(sessionDir)
	}

	if err := validateSelection(args); err != nil {
		return err
	}

	loc := locator.New(root)

	if hoursFlag > 0 {
		return listRecent(loc)
	}

	sessions, err := resolveSessions(loc, args)
	if err != nil {
		return err
	}

	outDir := cfg.OutputDir
	if outputDir != "" {
		outDir = expandPath(outputDir)
	}
	if err := ensureDir(outDir); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	renderer := render.New(render.Options{TimeAxis: timeAxis})

	var artifacts []string
	for _, s := range sessions {
		path, err := analyzeOne(renderer, s, outDir)
		if err != nil {
			util.LogWarnf("Skipping %s: %v", filepath.Base(s.Path), err)
			fmt.Printf("  ⚠ %s: %v\n", filepath.Base(s.Path), err)
			continue
		}
		if path != "" {
			artifacts = append(artifacts, path)
		}
	}

	if len(artifacts) == 0 {
		return fmt.Errorf("no charts generated from %d session(s)", len(sessions))
	}

	fmt.Printf("\nGenerated %d chart(s) in %s\n", len(artifacts), outDir)
	if !noOpen {
		opened := launch.OpenAll(artifacts)
		util.LogInfof("Opened %d of %d artifacts", opened, len(artifacts))
	}
	return nil
}

// validateSelection rejects ambiguous combinations before any file is read.
func validateSelection(args []string) error {
	selectors := 0
	if len(args) > 0 {
		selectors++
	}
	if latestN > 0 {
		selectors++
	}
	if dayFlag != "" {
		selectors++
	}
	if sinceFlag != "" {
		selectors++
	}
	if hoursFlag > 0 {
		selectors++
	}
	if selectors > 1 {
		return fmt.Errorf("ambiguous selection: choose one of a session path/ID, --latest, --day, --since, or --hours")
	}
	if selectors == 0 {
		latestN = 1
	}
	return nil
}

func resolveSessions(loc *locator.Locator, args []string) ([]locator.SessionInfo, error) {
	switch {
	case len(args) > 0:
		arg := args[0]
		if info, err := os.Stat(expandPath(arg)); err == nil && !info.IsDir() {
			path := expandPath(arg)
			return []locator.SessionInfo{{
				Path:      path,
				SessionID: locator.ExtractSessionID(filepath.Base(path)),
				Modified:  info.ModTime(),
			}}, nil
		}
		return loc.ByID(arg)
	case dayFlag != "":
		return loc.ForDay(dayFlag)
	case sinceFlag != "":
		return loc.Since(sinceFlag)
	default:
		return loc.Latest(latestN)
	}
}

// analyzeOne runs the full pipeline for one session file and returns the
// artifact path, or "" when the session has nothing to chart.
func analyzeOne(renderer *render.Renderer, s locator.SessionInfo, outDir string) (string, error) {
	name := filepath.Base(s.Path)
	fmt.Printf("Analyzing %s\n", name)

	data, err := ingest.ParseSession(s.Path)
	if err != nil {
		return "", err
	}
	fmt.Printf("  %d records, %d context snapshots, %d user turns\n",
		data.TotalRecords, len(data.Snapshots), len(data.Turns))

	view, err := metrics.Build(data)
	if err != nil {
		if errors.Is(err, metrics.ErrNoUsageData) {
			fmt.Printf("  ⚠ no token usage data, skipping\n")
			return "", nil
		}
		var unordered *correlate.UnorderedLogError
		if errors.As(err, &unordered) {
			return "", fmt.Errorf("transcript is not in chronological order: %w", err)
		}
		return "", err
	}

	sessionID := s.SessionID
	if sessionID == "" {
		sessionID = strings.TrimSuffix(name, filepath.Ext(name))
	}

	artifact := filepath.Join(outDir, fmt.Sprintf("context_%s.html", sessionID))
	if err := renderer.RenderFile(view, sessionID, artifact); err != nil {
		return "", err
	}

	fmt.Printf("  context %s / %s (%.1f%%), total %s tokens → %s\n",
		util.FormatNumber(view.FinalWindowTokens),
		util.FormatNumber(view.WindowCapacity),
		view.UsagePercent,
		util.FormatNumber(view.FinalCumulativeTokens),
		artifact)
	return artifact, nil
}

// listRecent prints sessions touched within the last --hours window.
func listRecent(loc *locator.Locator) error {
	window := time.Duration(hoursFlag * float64(time.Hour))
	sessions, err := loc.ModifiedWithin(window)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Printf("No sessions modified in the last %.1f hours\n", hoursFlag)
		return nil
	}

	width := util.TerminalWidth()
	fmt.Printf("Sessions modified in the last %.1f hours:\n", hoursFlag)
	for _, s := range sessions {
		age := util.FormatAge(time.Since(s.Modified))
		line := fmt.Sprintf("  %-8s %s", age, s.Path)
		fmt.Println(util.TruncateToWidth(line, width))
	}
	return nil
}

func initLogging() error {
	logFile := filepath.Join(expandPath("~/.codex-context"), "logs", "app.log")
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	level := "info"
	if debugMode {
		level = "debug"
	}
	util.InitLogger(level, logFile, debugMode)
	return nil
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	} else {
		path = expandPath(path)
	}
	return config.Load(path)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
