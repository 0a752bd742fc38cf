package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/leapsoql/internal/cli/output"
	"github.com/leapstack-labs/leapsoql/pkg/parser"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// ErrCheckFailed is returned when at least one checked file is invalid.
var ErrCheckFailed = errors.New("check failed")

// debounceDelay groups bursts of file events into one re-check.
const debounceDelay = 100 * time.Millisecond

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Watch bool
}

// checkResult is the outcome of checking one file.
type checkResult struct {
	Path   string `json:"path"`
	Valid  bool   `json:"valid"`
	Error  string `json:"error,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`

	err error
}

// checkReport is the JSON shape of the check command.
type checkReport struct {
	Files   []checkResult `json:"files"`
	Valid   int           `json:"valid"`
	Invalid int           `json:"invalid"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Validate query files",
		Long: `Parse every query file under the given paths and report the ones that
fail to parse.

Directories are searched recursively for files with one of the configured
extensions (default .soql). Files are checked concurrently, bounded by
--workers. The command exits non-zero when any file is invalid, except in
--watch mode where it keeps re-checking on change until interrupted.`,
		Example: `  # Check every .soql file below the current directory
  leapsoql check

  # Check two files with JSON output
  leapsoql check a.soql b.soql -o json

  # Re-check on every save
  leapsoql check ./queries --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-check when files change")
	cmd.Flags().Int("workers", 0, "Number of files checked concurrently")
	cmd.Flags().StringSlice("extensions", nil, "File extensions collected from directories")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	cc := NewCommandContext(cmd)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if len(args) == 0 {
		args = []string{"."}
	}

	err := cc.checkOnce(ctx, args)
	if !opts.Watch {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, path := range args {
		if err := watchPath(watcher, path); err != nil {
			return err
		}
	}
	cc.Renderer.Println(cc.Renderer.Styles().Muted.Render("Watching for changes. Press Ctrl+C to stop."))

	return watchLoop(ctx, watcher, cc.Cfg.Extensions, explicitFiles(args), cc.Logger, func() {
		cc.Logger.Debug("re-checking after change")
		_ = cc.checkOnce(ctx, args)
	})
}

// checkOnce collects, checks and reports the files under paths.
func (c *CommandContext) checkOnce(ctx context.Context, paths []string) error {
	files, err := collectFiles(paths, c.Cfg.Extensions)
	if err != nil {
		return err
	}
	results, err := checkFiles(ctx, files, c.Cfg.Workers)
	if err != nil {
		return err
	}
	c.Logger.Debug("checked files", "count", len(results), "workers", c.Cfg.Workers)
	return c.reportCheck(results)
}

// collectFiles expands paths into a sorted, duplicate free file list.
// Explicit files are kept whatever their extension.
func collectFiles(paths, extensions []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != path && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if hasExtension(p, extensions) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", path, err)
		}
	}

	slices.Sort(files)
	return files, nil
}

func hasExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, want := range extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// checkFiles parses files concurrently with at most workers in flight.
// Results keep the order of files. Only I/O problems and cancellation are
// returned as errors; parse failures are recorded in the results.
func checkFiles(ctx context.Context, files []string, workers int) ([]checkResult, error) {
	results := make([]checkResult, len(files))

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(workers, 1))
	for i, path := range files {
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			results[i] = checkFile(path)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func checkFile(path string) checkResult {
	res := checkResult{Path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		res.err = err
		res.Error = err.Error()
		return res
	}

	text := strings.TrimRight(string(data), " \t\r\n;")
	if _, err := parser.Parse(text); err != nil {
		res.err = err
		res.Error = err.Error()
		if pos, _, ok := errorPosition(err); ok {
			res.Line, res.Column = pos.Line, pos.Column
		}
		return res
	}
	res.Valid = true
	return res
}

func (c *CommandContext) reportCheck(results []checkResult) error {
	r := c.Renderer
	report := checkReport{Files: results}
	for _, res := range results {
		if res.Valid {
			report.Valid++
		} else {
			report.Invalid++
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(report); err != nil {
			return err
		}
	} else {
		rows := make([][]string, len(results))
		for i, res := range results {
			status, location := "ok", ""
			if !res.Valid {
				status = "invalid"
				if res.Line > 0 {
					location = strconv.Itoa(res.Line) + ":" + strconv.Itoa(res.Column)
				}
			}
			rows[i] = []string{r.Styles().Path.Render(res.Path), status, location}
		}
		r.Header("Check results")
		r.Table([]string{"File", "Status", "Location"}, rows)

		for _, res := range results {
			if !res.Valid {
				reportError(r, res.Path, res.err)
			}
		}

		total := len(results)
		if report.Invalid == 0 {
			r.Success(fmt.Sprintf("%d %s checked, all valid", total, plural(total, "file", "files")))
		} else {
			r.Error(fmt.Sprintf("%d of %d %s invalid", report.Invalid, total, plural(total, "file", "files")))
		}
	}

	if report.Invalid > 0 {
		return fmt.Errorf("%w: %d of %d files invalid", ErrCheckFailed, report.Invalid, len(results))
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// watchPath registers path with the watcher. Directories are watched
// recursively; for a file its directory is watched so that editors that
// replace files on save are still seen.
func watchPath(w *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return w.Add(filepath.Dir(path))
	}
	return watchDirRecursive(w, path)
}

// watchDirRecursive adds a directory and all its subdirectories to the watcher.
func watchDirRecursive(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // skip unreadable entries
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return w.Add(path)
		}
		return nil
	})
}

// explicitFiles returns the absolute paths of the arguments that name
// files rather than directories.
func explicitFiles(paths []string) map[string]bool {
	files := make(map[string]bool)
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			files[absPath(p)] = true
		}
	}
	return files
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// watchLoop calls onChange, debounced, whenever a file with one of the
// extensions, or one of the explicit files, is written or created. It
// returns when ctx is done or the watcher is closed.
func watchLoop(ctx context.Context, w *fsnotify.Watcher, extensions []string, files map[string]bool, logger *slog.Logger, onChange func()) error {
	changed := make(chan struct{}, 1)
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watchDirRecursive(w, event.Name)
					continue
				}
			}
			if !hasExtension(event.Name, extensions) && !files[absPath(event.Name)] {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, func() {
				select {
				case changed <- struct{}{}:
				default:
				}
			})

		case <-changed:
			onChange()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}
