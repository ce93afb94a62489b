package cli

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/githubnext/runner-guard/pkg/console"
	"github.com/githubnext/runner-guard/pkg/constants"
	"github.com/githubnext/runner-guard/pkg/envutil"
	"github.com/githubnext/runner-guard/pkg/fileutil"
	"github.com/githubnext/runner-guard/pkg/logger"
	"github.com/githubnext/runner-guard/pkg/timeutil"
	"github.com/githubnext/runner-guard/pkg/workflow"
	"github.com/spf13/cobra"
)

var watchLog = logger.New("cli:watch_command")

// WatchConfig holds configuration for the watch command
type WatchConfig struct {
	Check CheckOptions
	// Debounce is how long to wait after the last change before checking.
	Debounce time.Duration
	// OnCheck, when set, is called after every check.
	OnCheck func(report *Report, err error)
}

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run the check whenever a workflow file changes",
		Long: `Run the check once, then again every time a .yml or .yaml file under the
workflow directory is created, changed, renamed or removed. Every run scans all
workflow files from scratch. Stop with Ctrl+C.

The delay between the last change and the next run is ` + fmt.Sprintf("%d", constants.DefaultWatchDebounceMs) + `ms and can be
changed with ` + string(constants.WatchDebounceEnv) + `.

Examples:
  ` + string(constants.CLIName) + ` watch -a "ubuntu-latest self-hosted"
  ` + string(constants.CLIName) + ` watch -w ../repo -a "*"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			debounceMs := envutil.GetIntFromEnv(string(constants.WatchDebounceEnv), constants.DefaultWatchDebounceMs, 1, 10000, watchLog)
			return RunWatch(cmd.Context(), WatchConfig{
				Check:    readCheckOptions(cmd),
				Debounce: time.Duration(debounceMs) * time.Millisecond,
			}, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	addLocationFlags(cmd)
	addPolicyFlags(cmd)
	addJSONFlag(cmd)

	return cmd
}

// RunWatch checks the workflows once and then after every change until ctx
// is done. Failed checks are reported and do not stop the watch.
func RunWatch(ctx context.Context, config WatchConfig, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if config.Debounce <= 0 {
		config.Debounce = time.Duration(constants.DefaultWatchDebounceMs) * time.Millisecond
	}

	checkConfig := newCheckConfig(config.Check)
	workflowDir := checkConfig.WorkflowDir
	if workflowDir == "" {
		workflowDir = constants.GetWorkflowDir()
	}
	dir, err := fileutil.ResolveDir(checkConfig.Workspace, workflowDir)
	if err != nil {
		return &workflow.DiscoveryError{Dir: workflowDir, Err: err}
	}
	if !fileutil.DirExists(dir) {
		return &workflow.DiscoveryError{Dir: dir, Err: fmt.Errorf("not a directory")}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchTree(watcher, dir); err != nil {
		return err
	}
	watchLog.Printf("Watching %s with debounce %s", dir, config.Debounce)
	fmt.Fprintln(stderr, console.FormatInfoMessage(fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", dir)))

	runOnce := func() {
		start := time.Now()
		report, err := RunCheck(ctx, checkConfig, newHost(config.Check, stdout, stderr))
		if config.Check.JSONOutput {
			if encodeErr := writeJSON(stdout, report); encodeErr != nil {
				fmt.Fprintln(stderr, console.FormatErrorMessage(encodeErr.Error()))
			}
		}
		watchLog.Printf("Check finished in %s: passed=%v", timeutil.FormatDuration(time.Since(start)), report.Passed)
		if config.OnCheck != nil {
			config.OnCheck(report, err)
		}
	}

	runOnce()

	var timer *time.Timer
	var pending <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			watchLog.Print("Watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !handleEvent(watcher, event) {
				continue
			}
			watchLog.Printf("Change detected: %s", event)
			if timer == nil {
				timer = time.NewTimer(config.Debounce)
			} else {
				timer.Reset(config.Debounce)
			}
			pending = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(stderr, console.FormatWarningMessage(fmt.Sprintf("Watch error: %v", err)))

		case <-pending:
			pending = nil
			if config.Check.Verbose {
				fmt.Fprintln(stderr, console.FormatVerboseMessage("Workflow files changed, checking again"))
			}
			runOnce()
		}
	}
}

// watchTree adds dir and every directory below it to watcher.
func watchTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// handleEvent starts watching new directories and reports whether event
// can change the set of runner tags.
func handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event) bool {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return false
	}
	if event.Has(fsnotify.Create) && fileutil.DirExists(event.Name) {
		if err := watchTree(watcher, event.Name); err != nil {
			watchLog.Printf("Failed to watch new directory %s: %v", event.Name, err)
		}
		return true
	}
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		return true
	}
	return isWorkflowFile(event.Name)
}

func isWorkflowFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yml" || ext == ".yaml"
}
