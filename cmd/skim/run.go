// Command skim is the CLI surface spec.md §6 specifies as an external
// collaborator: it wires the transformation engine (package skim) to the
// filesystem via internal/walker (glob/directory expansion), a bounded
// worker pool fanning out across --jobs goroutines modeled on the
// teacher's demo runner goroutine-per-scenario pattern, the result cache
// (package cache), and the optional history log (internal/history).
package main

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/oxhq/skim"
	"github.com/oxhq/skim/cache"
	"github.com/oxhq/skim/catalog"
	"github.com/oxhq/skim/internal/history"
	"github.com/oxhq/skim/internal/walker"
	"github.com/oxhq/skim/skimerr"
	"github.com/oxhq/skim/tokens"
)

const maxInputBytes = 50 * 1024 * 1024 // 50 MB, per spec.md §6

// Exit codes. 0 is success; every other value is a distinct user-facing
// failure class spec.md §6 requires to be non-zero (it does not mandate
// specific numbers beyond that).
const (
	exitOK = iota
	exitInvalidFlag
	exitPathTraversal
	exitUnsupportedLanguage
	exitInputTooLarge
	exitNoFilesMatched
	exitAllFilesFailed
)

type fileOutcome struct {
	index   int
	path    string
	content string
	stats   tokens.Stats
	hasErr  bool
	err     error
}

// run executes the CLI for opts, writing output to stdout and diagnostics
// to stderr, and returns a process exit code.
func run(opts Options, stdout, stderr io.Writer) int {
	if err := validateJobs(opts.Jobs); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitInvalidFlag
	}

	var resultCache *cache.Cache
	if !opts.NoCache {
		dir, err := cache.DefaultDir()
		if err == nil {
			if c, err := cache.Open(dir); err == nil {
				resultCache = c
			}
		}
	}
	if opts.ClearCache && resultCache != nil {
		if err := resultCache.Clear(); err != nil {
			fmt.Fprintln(stderr, "Warning: failed to clear cache:", err)
		}
	}

	var historyLog *history.Log
	if opts.History != "" {
		log, err := history.Open(opts.History, false)
		if err != nil {
			fmt.Fprintln(stderr, "Warning: history log unavailable:", err)
		} else {
			historyLog = log
			defer historyLog.Close()
		}
	}

	if len(opts.Targets) == 1 && opts.Targets[0] == "-" {
		return runStdin(opts, stdout, stderr)
	}

	paths, code := expandAllTargets(opts.Targets, stderr)
	if code != exitOK {
		return code
	}
	if len(paths) == 0 {
		fmt.Fprintln(stderr, "Error: no files matched")
		return exitNoFilesMatched
	}

	outcomes := processFiles(paths, opts, resultCache, historyLog)

	failures := 0
	for i, o := range outcomes {
		if o.hasErr {
			failures++
			fmt.Fprintf(stderr, "%s: %v\n", o.path, o.err)
			continue
		}
		writeFileOutput(stdout, o, len(paths) > 1 && !opts.NoHeader, i > 0)
		if opts.ShowStats {
			reportStats(stderr, o)
		}
	}

	if failures == len(outcomes) {
		return exitAllFilesFailed
	}
	return exitOK
}

func expandAllTargets(targets []string, stderr io.Writer) ([]string, int) {
	var all []string
	seen := make(map[string]bool)
	for _, target := range targets {
		files, warnings, err := walker.Expand(target)
		for _, w := range warnings {
			fmt.Fprintln(stderr, "Warning:", w.String())
		}
		if err != nil {
			var traversal *walker.ErrParentTraversal
			if errors.As(err, &traversal) {
				fmt.Fprintln(stderr, "Error:", err)
				return nil, exitPathTraversal
			}
			fmt.Fprintln(stderr, "Error:", err)
			continue
		}
		for _, f := range files {
			if !seen[f] {
				seen[f] = true
				all = append(all, f)
			}
		}
	}
	sort.Strings(all)
	return all, exitOK
}

// processFiles fans work out across min(opts.Jobs, len(paths)) goroutines
// and reassembles results in input order, per spec.md §5's "driver writes
// results in input order after all workers complete."
func processFiles(paths []string, opts Options, resultCache *cache.Cache, historyLog *history.Log) []fileOutcome {
	outcomes := make([]fileOutcome, len(paths))

	jobs := opts.Jobs
	if jobs > len(paths) {
		jobs = len(paths)
	}
	if jobs < 1 {
		jobs = 1
	}

	indices := make(chan int, len(paths))
	for i := range paths {
		indices <- i
	}
	close(indices)

	var wg sync.WaitGroup
	for w := 0; w < jobs; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				outcomes[i] = processOneFile(i, paths[i], opts, resultCache, historyLog)
			}
		}()
	}
	wg.Wait()

	return outcomes
}

func processOneFile(index int, path string, opts Options, resultCache *cache.Cache, historyLog *history.Log) fileOutcome {
	info, err := os.Stat(path)
	if err != nil {
		return fileOutcome{index: index, path: path, hasErr: true, err: err}
	}
	if info.Size() > maxInputBytes {
		return fileOutcome{index: index, path: path, hasErr: true, err: fmt.Errorf("input too large: %d bytes (max %d)", info.Size(), maxInputBytes)}
	}

	modeTag := opts.ModeName
	if resultCache != nil {
		if entry, ok := resultCache.Read(path, modeTag); ok {
			return fileOutcome{index: index, path: path, content: entry.Content}
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fileOutcome{index: index, path: path, hasErr: true, err: err}
	}
	source := string(data)

	language := resolveLanguage(path, opts.Language)
	if _, known := catalog.FromPath(path); opts.Language == "" && !known {
		return fileOutcome{index: index, path: path, hasErr: true, err: skimerr.NewUnsupportedLanguage(path)}
	}

	result, err := skim.TransformDetailed(source, language, opts.Mode, tokens.Heuristic{})
	if err != nil {
		return fileOutcome{index: index, path: path, hasErr: true, err: err}
	}

	stats := tokens.Stats{Original: result.OriginalTokens, Transformed: result.TransformedTokens}

	if resultCache != nil {
		orig, trans := result.OriginalTokens, result.TransformedTokens
		if err := resultCache.Write(path, modeTag, result.Content, &orig, &trans); err != nil {
			// Cache writes are never fatal to transformation, per spec §4.10/§5.
		}
	}
	if historyLog != nil {
		sum := sha256.Sum256([]byte(result.Content))
		_ = historyLog.Append(history.Record{
			Path:             path,
			Language:         catalog.DisplayName(language),
			Mode:             modeTag,
			OriginalBytes:    len(source),
			TransformedBytes: len(result.Content),
			OriginalLines:    strings.Count(source, "\n") + 1,
			TransformedLines: strings.Count(result.Content, "\n") + 1,
			DurationMS:       result.DurationMS,
			ContentHash:      hex.EncodeToString(sum[:]),
		})
	}

	return fileOutcome{index: index, path: path, content: result.Content, stats: stats}
}

func resolveLanguage(path, languageFlag string) catalog.Kind {
	if kind, ok := catalog.FromPath(path); ok {
		return kind
	}
	if languageFlag != "" {
		if kind, ok := catalog.FromExtension(languageFlag); ok {
			return kind
		}
	}
	return catalog.Unknown
}

func writeFileOutput(w io.Writer, o fileOutcome, withHeader, needsBlankLine bool) {
	if withHeader {
		if needsBlankLine {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "// === %s ===\n", o.path)
	}
	fmt.Fprintln(w, o.content)
}

func reportStats(w io.Writer, o fileOutcome) {
	fmt.Fprintf(w, "%s: %d -> %d tokens (%.1f%% reduction)\n",
		o.path, o.stats.Original, o.stats.Transformed, o.stats.ReductionPercentage())
}

func runStdin(opts Options, stdout, stderr io.Writer) int {
	if opts.Language == "" {
		fmt.Fprintln(stderr, "Error: --language is required when reading from stdin")
		return exitUnsupportedLanguage
	}
	kind, ok := catalog.FromExtension(opts.Language)
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown --language %q\n", opts.Language)
		return exitUnsupportedLanguage
	}

	data, err := readAllLimited(os.Stdin, maxInputBytes+1)
	if err != nil {
		fmt.Fprintln(stderr, "Error reading stdin:", err)
		return exitAllFilesFailed
	}
	if len(data) > maxInputBytes {
		fmt.Fprintln(stderr, "Error: input too large")
		return exitInputTooLarge
	}

	result, err := skim.TransformDetailed(string(data), kind, opts.Mode, tokens.Heuristic{})
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitAllFilesFailed
	}

	fmt.Fprintln(stdout, result.Content)
	if opts.ShowStats {
		fmt.Fprintf(stderr, "stdin: %d -> %d tokens (%.1f%% reduction)\n",
			result.OriginalTokens, result.TransformedTokens,
			tokens.Stats{Original: result.OriginalTokens, Transformed: result.TransformedTokens}.ReductionPercentage())
	}
	return exitOK
}

func readAllLimited(r io.Reader, limit int64) ([]byte, error) {
	lr := &io.LimitedReader{R: bufio.NewReader(r), N: limit}
	return io.ReadAll(lr)
}
