package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/sotola/codex-context/internal/data/locator"
	"github.com/sotola/codex-context/internal/presentation/render"
	"github.com/sotola/codex-context/internal/util"
)

var watchCmd = &cobra.Command{
	Use:   "watch [session-path-or-id]",
	Short: "Re-render a session's chart whenever its transcript grows",
	Long: `Watch a session transcript and regenerate its HTML chart on every
write. With no argument the most recently modified session is watched.
Stop with Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVarP(&timeAxis, "time-axis", "t", false, "Start charts on the wall-clock axis instead of log position")
	watchCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for generated HTML artifacts")
	watchCmd.Flags().StringVarP(&sessionDir, "dir", "d", "", "Sessions root directory to scan")
	watchCmd.Flags().StringVar(&configPath, "config", "", "Config file path (default ~/.codex-context/config.yaml)")
	rootCmd.AddCommand(watchCmd)
}

// debounceWindow coalesces fsnotify event bursts from appending writers.
const debounceWindow = 500 * time.Millisecond

func runWatch(cmd *cobra.Command, args []string) error {
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

	loc := locator.New(root)
	var sessions []locator.SessionInfo
	if len(args) > 0 {
		sessions, err = resolveSessions(loc, args)
	} else {
		sessions, err = loc.Latest(1)
	}
	if err != nil {
		return err
	}
	session := sessions[len(sessions)-1]

	outDir := cfg.OutputDir
	if outputDir != "" {
		outDir = expandPath(outputDir)
	}
	if err := ensureDir(outDir); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	renderer := render.New(render.Options{TimeAxis: timeAxis})

	// Initial render before waiting for changes.
	if _, err := analyzeOne(renderer, session, outDir); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the parent directory; editors and loggers often replace files
	// rather than appending in place.
	if err := watcher.Add(filepath.Dir(session.Path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", session.Path, err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	fmt.Printf("\nWatching %s (Ctrl-C to stop)\n", session.Path)

	var debounce *time.Timer
	renderCh := make(chan struct{}, 1)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != session.Path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			util.LogDebugf("File event: %s", event)
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceWindow, func() {
				select {
				case renderCh <- struct{}{}:
				default:
				}
			})

		case <-renderCh:
			if info, err := os.Stat(session.Path); err == nil {
				session.Modified = info.ModTime()
			}
			if _, err := analyzeOne(renderer, session, outDir); err != nil {
				util.LogWarnf("Re-render failed: %v", err)
				fmt.Printf("  ⚠ %v\n", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			util.LogWarnf("Watcher error: %v", err)

		case sig := <-sigCh:
			fmt.Printf("\nReceived %v, stopping\n", sig)
			return nil
		}
	}
}
