// Package scanner walks directory trees and condenses them into file
// clusters. The workload is metadata-I/O bound, so discovered entries fan
// out to a worker pool and each entry costs exactly one metadata read.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hanpf2391/clear-ai-sub001/internal/cluster"
	"github.com/hanpf2391/clear-ai-sub001/internal/progress"
	"github.com/hanpf2391/clear-ai-sub001/internal/security"
)

// Options configures one scanner instance.
type Options struct {
	// Recursive enables bounded-depth descent; otherwise only the root's
	// immediate children are listed.
	Recursive bool
	// MaxDepth bounds recursive descent. Depth 1 is the root's immediate
	// children. Values below 1 are normalized to 1.
	MaxDepth int
	// Workers sets the pool size; 0 picks NumCPU clamped to [4, 16].
	Workers int
	// ExcludeExtensions lists extension tokens to skip, with or without a
	// leading dot.
	ExcludeExtensions []string
}

func (o Options) normalized() Options {
	if o.MaxDepth < 1 {
		o.MaxDepth = 1
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
		if o.Workers < 4 {
			o.Workers = 4 // minimum for I/O parallelism
		}
		if o.Workers > 16 {
			o.Workers = 16 // avoid excessive context switching
		}
	}
	return o
}

// Scanner scans one or more roots, one ScanAndCluster call per root. A
// Scanner is safe for concurrent calls; per-invocation state (registry,
// counters, error log) is created fresh inside each call.
type Scanner struct {
	guard   *security.PathGuard
	tracker *progress.Tracker
	opts    Options
	exclude map[string]bool
}

// New creates a Scanner with the given protected-path guard and options.
func New(guard *security.PathGuard, opts Options) *Scanner {
	s := &Scanner{
		guard:   guard,
		opts:    opts.normalized(),
		exclude: make(map[string]bool, len(opts.ExcludeExtensions)),
	}
	for _, ext := range opts.ExcludeExtensions {
		token := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if token != "" {
			s.exclude[token] = true
		}
	}
	return s
}

// SetTracker attaches a progress tracker. The scanner reports per-root
// transitions through it; without one, scanning is silent.
func (s *Scanner) SetTracker(t *progress.Tracker) {
	s.tracker = t
}

// workItem is the unit of concurrent work: one discovered directory entry.
type workItem struct {
	dir   string
	entry fs.DirEntry
}

// scanJob holds the state of a single ScanAndCluster invocation.
type scanJob struct {
	scanner  *Scanner
	root     string
	now      time.Time
	registry *cluster.Registry
	files    counter
	bytes    counter
	errs     errorLog
}

// ScanAndCluster scans one root and groups its files into clusters. It
// always returns a Result: an invalid root yields an empty result carrying
// a descriptive error, and per-entry failures never abort the traversal.
// Cancellation via ctx marks the root failed and returns the partial
// result built so far.
func (s *Scanner) ScanAndCluster(ctx context.Context, root string) *Result {
	start := time.Now()
	root = filepath.Clean(root)
	res := &Result{ID: uuid.NewString(), Root: root}

	info, err := os.Stat(root)
	if err != nil {
		res.Errors = []string{fmt.Sprintf("root %s: %v", root, err)}
		res.Duration = time.Since(start)
		s.fail(root, err)
		return res
	}
	if !info.IsDir() {
		res.Errors = []string{fmt.Sprintf("root %s: not a directory", root)}
		res.Duration = time.Since(start)
		s.fail(root, fmt.Errorf("not a directory: %s", root))
		return res
	}

	job := &scanJob{
		scanner:  s,
		root:     root,
		now:      start,
		registry: cluster.NewRegistry(),
	}
	s.report(root, 0, 0)

	items := make(chan workItem, 4*s.opts.Workers)
	var wg sync.WaitGroup
	for i := 0; i < s.opts.Workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for it := range items {
				job.process(worker, it)
			}
		}(i)
	}

	var walkErr error
	if s.opts.Recursive {
		walkErr = job.walk(ctx, items)
	} else {
		walkErr = job.list(ctx, items)
	}
	close(items)
	wg.Wait()

	res.Clusters = job.registry.Clusters()
	res.TotalFiles = job.files.total()
	res.TotalSize = job.bytes.total()
	res.Errors = job.errs.snapshot()
	res.Duration = time.Since(start)

	if walkErr != nil {
		// Catastrophic for this root only; sibling roots are unaffected.
		res.Errors = append(res.Errors, fmt.Sprintf("scan of %s aborted: %v", root, walkErr))
		s.fail(root, walkErr)
		return res
	}

	if s.tracker != nil {
		s.tracker.Update(root, res.TotalFiles, res.TotalSize)
		s.tracker.SetTotals(root, res.TotalFiles, res.TotalSize)
		s.tracker.Complete(root)
	}
	return res
}

// list enumerates the root's immediate children.
func (j *scanJob) list(ctx context.Context, out chan<- workItem) error {
	entries, err := os.ReadDir(j.root)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		out <- workItem{dir: j.root, entry: entry}
	}
	return nil
}

// walk descends recursively, pruning at MaxDepth and at protected
// directories. Expected traversal errors (vanished or unreadable
// directories) are dropped; anything else lands in the error log.
func (j *scanJob) walk(ctx context.Context, out chan<- workItem) error {
	maxDepth := j.scanner.opts.MaxDepth
	sep := string(os.PathSeparator)
	rootDepth := strings.Count(j.root, sep)
	if j.root == sep {
		// "/" already ends in the separator its children add.
		rootDepth = 0
	}

	return filepath.WalkDir(j.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == j.root {
				return err
			}
			if os.IsNotExist(err) || os.IsPermission(err) {
				return nil
			}
			j.errs.appendf("walk %s: %v", path, err)
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			if path == j.root {
				return nil
			}
			depth := strings.Count(filepath.Clean(path), sep) - rootDepth
			if depth >= maxDepth {
				return fs.SkipDir
			}
			if j.scanner.guard.Blocked(path) {
				return fs.SkipDir
			}
			return nil
		}

		out <- workItem{dir: filepath.Dir(path), entry: d}
		return nil
	})
}

// process runs the per-entry pipeline: filter, the single metadata read,
// key derivation, registry insert, counter bumps, progress report.
func (j *scanJob) process(worker int, it workItem) {
	// Type comes from the directory listing itself; symlinks, sockets and
	// subdirectories are rejected before spending a metadata read.
	if !it.entry.Type().IsRegular() {
		return
	}

	name := it.entry.Name()
	path := filepath.Join(it.dir, name)
	if j.scanner.guard.Blocked(path) {
		return
	}
	if j.scanner.exclude[cluster.ExtensionToken(name)] {
		return
	}

	// The one metadata read for this entry.
	info, err := it.entry.Info()
	if err != nil {
		if os.IsNotExist(err) || os.IsPermission(err) {
			// Vanished mid-scan or unreadable: common, not actionable.
			return
		}
		j.errs.appendf("stat %s: %v", path, err)
		return
	}

	key := cluster.Derive(name, it.dir, info.ModTime(), j.now)
	c := j.registry.GetOrCreate(key)
	j.registry.AddFile(c, cluster.FileEntry{
		Path:       path,
		Name:       name,
		ParentPath: it.dir,
		Size:       info.Size(),
		ModTime:    info.ModTime(),
	})

	j.files.add(worker, 1)
	j.bytes.add(worker, info.Size())
	j.scanner.report(j.root, j.files.total(), j.bytes.total())
}

func (s *Scanner) report(root string, files, bytes int64) {
	if s.tracker != nil {
		s.tracker.Update(root, files, bytes)
	}
}

func (s *Scanner) fail(root string, err error) {
	if s.tracker != nil {
		s.tracker.Fail(root, err)
	}
}
