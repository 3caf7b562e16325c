package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nifstream/pkg/cache"
	"github.com/matzehuels/nifstream/pkg/errors"
	"github.com/matzehuels/nifstream/pkg/nif"
)

// probeCacheTTL bounds how long a cached probe result is trusted. The key
// already includes size and mtime, so this mainly reaps entries for files
// that no longer exist.
const probeCacheTTL = 7 * 24 * time.Hour

// walkConfig is the on-disk configuration for the walk command.
type walkConfig struct {
	// Extensions lists the file extensions to probe, including the dot.
	Extensions []string `toml:"extensions"`

	// Decode fully decodes recognized files instead of only probing them.
	Decode bool `toml:"decode"`

	// FailFast aborts the walk on the first corrupt file.
	FailFast bool `toml:"fail_fast"`
}

func defaultWalkConfig() walkConfig {
	return walkConfig{
		Extensions: []string{".nif", ".kf", ".kfa", ".nifcache"},
	}
}

// loadWalkConfig reads a TOML config file, falling back to defaults for
// any field the file does not set.
func loadWalkConfig(path string) (walkConfig, error) {
	cfg := defaultWalkConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// probeResult is the cached outcome of probing one file.
type probeResult struct {
	Version     string `json:"version,omitempty"`
	UserVersion uint32 `json:"user_version,omitempty"`
	ErrorCode   string `json:"error_code,omitempty"`
}

// walkCommand creates the walk command.
func (c *CLI) walkCommand() *cobra.Command {
	var (
		configPath string
		decode     bool
		failFast   bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "walk <dir>",
		Short: "Scan a directory tree and classify every matching file",
		Long: `Walk scans a directory tree, probes every file with a matching
extension, and reports how many files each format version has.

Probe results are cached keyed by path, size, and modification time, so
repeated walks over an unchanged tree skip the file reads entirely.
With --decode, recognized files are fully decoded as well, which turns
the walk into an integrity check.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadWalkConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("decode") {
				cfg.Decode = decode
			}
			if cmd.Flags().Changed("fail-fast") {
				cfg.FailFast = failFast
			}

			runID := uuid.NewString()
			logger.Debug("starting walk", "run", runID, "root", args[0], "extensions", strings.Join(cfg.Extensions, ","))

			var store cache.Cache = cache.NewNullCache()
			if !noCache {
				dir, err := cacheDir()
				if err != nil {
					return err
				}
				store, err = cache.NewFileCache(dir)
				if err != nil {
					return fmt.Errorf("open cache: %w", err)
				}
			}
			defer store.Close()

			tracker := newProgress(logger)
			spinner := newSpinnerWithContext(ctx, "Scanning "+args[0])
			spinner.Start()

			w := &walker{cfg: cfg, store: store, versions: map[string]int{}}
			walkErr := filepath.WalkDir(args[0], func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if d.IsDir() || !w.matches(path) {
					return nil
				}
				return w.visit(ctx, path, d)
			})

			if spinner.Cancelled() {
				spinner.Stop()
				return ctx.Err()
			}
			spinner.Stop()
			if walkErr != nil {
				printError("Walk aborted: %v", walkErr)
				return walkErr
			}

			tracker.done(fmt.Sprintf("Scanned %d files", w.scanned))
			w.printSummary(cfg.Decode)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file for the walk")
	cmd.Flags().BoolVar(&decode, "decode", false, "fully decode recognized files")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "abort on the first corrupt file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "probe every file even when a cached result exists")

	return cmd
}

// walker accumulates classification counts over one directory scan.
type walker struct {
	cfg   walkConfig
	store cache.Cache

	scanned     int
	cached      int
	versions    map[string]int
	notFormat   int
	unsupported int
	corrupt     int
}

func (w *walker) matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range w.cfg.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func (w *walker) visit(ctx context.Context, path string, d fs.DirEntry) error {
	w.scanned++

	info, err := d.Info()
	if err != nil {
		return err
	}
	key := cache.ProbeKey(path, info.Size(), info.ModTime())

	if data, ok, _ := w.store.Get(ctx, key); ok {
		var res probeResult
		if err := json.Unmarshal(data, &res); err == nil {
			w.cached++
			return w.classify(path, res)
		}
	}

	res := w.probe(path)
	if data, err := json.Marshal(res); err == nil {
		_ = w.store.Set(ctx, key, data, probeCacheTTL)
	}
	return w.classify(path, res)
}

// probe opens one file and records its classification.
func (w *walker) probe(path string) probeResult {
	f, err := os.Open(path)
	if err != nil {
		return probeResult{ErrorCode: string(errors.ErrCodeInternal)}
	}
	defer f.Close()

	v, userVersion, err := nif.Probe(f)
	if err != nil {
		return probeResult{ErrorCode: string(failureCode(err))}
	}
	res := probeResult{Version: v.String(), UserVersion: userVersion}

	if w.cfg.Decode {
		if _, err := f.Seek(0, 0); err != nil {
			res.ErrorCode = string(errors.ErrCodeInternal)
			return res
		}
		if _, err := nif.Decode(f); err != nil {
			res.ErrorCode = string(failureCode(err))
		}
	}
	return res
}

// failureCode maps an error to its structured code, or INTERNAL_ERROR for
// plain errors such as I/O failures.
func failureCode(err error) errors.Code {
	if code := errors.GetCode(err); code != "" {
		return code
	}
	return errors.ErrCodeInternal
}

func (w *walker) classify(path string, res probeResult) error {
	switch errors.Code(res.ErrorCode) {
	case "":
		w.versions[res.Version]++
		return nil
	case errors.ErrCodeNotThisFormat:
		w.notFormat++
		return nil
	case errors.ErrCodeUnsupportedVersion:
		w.unsupported++
		return nil
	default:
		w.corrupt++
		if w.cfg.FailFast {
			return fmt.Errorf("%s: %s", path, res.ErrorCode)
		}
		printDetail("%s %s (%s)", iconWarning, path, res.ErrorCode)
		return nil
	}
}

func (w *walker) printSummary(decoded bool) {
	if w.scanned == 0 {
		printInfo("No matching files found")
		return
	}

	verb := "probed"
	if decoded {
		verb = "decoded"
	}
	printSuccess("Scanned %d files (%s, %d cached)", w.scanned, verb, w.cached)

	names := make([]string, 0, len(w.versions))
	for name := range w.versions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		printKeyValue(name, fmt.Sprintf("%d", w.versions[name]))
	}
	if w.notFormat > 0 {
		printKeyValue("other format", fmt.Sprintf("%d", w.notFormat))
	}
	if w.unsupported > 0 {
		printKeyValue("unsupported", fmt.Sprintf("%d", w.unsupported))
	}
	if w.corrupt > 0 {
		printWarning("%d corrupt files", w.corrupt)
	}
}
