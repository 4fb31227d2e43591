package swiftdeps

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"golang.org/x/sync/errgroup"

	"github.com/jhall/swiftdeps/internal/index"
	"github.com/jhall/swiftdeps/internal/parser"
)

// Engine orchestrates the pipeline: file discovery, parallel extraction
// across a worker pool, and single-threaded Index population. The Index is
// rebuilt from scratch on every Scan.
type Engine struct {
	index   *index.Index
	workers int
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets the extraction worker pool size. Defaults to the number
// of CPUs.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithLogger sets the logger used for per-file failures and scan summaries.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an Engine with an empty Index.
func New(opts ...Option) *Engine {
	e := &Engine{
		index:   index.New(),
		workers: runtime.NumCPU(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Index returns the underlying Index. Valid for reading once Scan has
// returned; all mutation happens inside Scan.
func (e *Engine) Index() *index.Index {
	return e.index
}

// Walk returns a cursor over everything the named type transitively
// depends on. Fails with index.ErrTypeNotFound if the name was never
// indexed.
func (e *Engine) Walk(typeName string) (*index.Cursor, error) {
	return e.index.Walk(typeName)
}

// ScanStats summarizes one Scan.
type ScanStats struct {
	Files        int // files extracted successfully
	Packages     int // package manifests indexed
	Declarations int // declarations indexed
	Failures     int // files whose extraction failed and contributed nothing
}

// fileResult is one worker's output for one file: a manifest's package
// name, a source file's declarations, or a per-file error.
type fileResult struct {
	path  string
	pkg   string // non-empty for Package.swift manifests
	decls []parser.Declaration
	err   error
}

const manifestName = "Package.swift"

// skipDirs are directories never worth scanning for Swift sources.
var skipDirs = map[string]bool{
	".build":       true,
	"Pods":         true,
	"Carthage":     true,
	"DerivedData":  true,
	"node_modules": true,
}

// Scan discovers Swift files under root, extracts them in parallel, and
// populates the Index. Each worker owns its parser; results flow through a
// channel back to this goroutine, which is the single consumer performing
// all Index mutations. A per-file extraction failure is logged and counted
// but never cancels the scan.
func (e *Engine) Scan(ctx context.Context, root string) (*ScanStats, error) {
	paths, err := discoverFiles(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	stats := &ScanStats{}
	if len(paths) == 0 {
		return stats, nil
	}

	workCh := make(chan string, len(paths))
	for _, p := range paths {
		workCh <- p
	}
	close(workCh)

	resultCh := make(chan fileResult, len(paths))

	numWorkers := min(e.workers, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < numWorkers; i++ {
		g.Go(func() error {
			p, err := parser.New()
			if err != nil {
				return fmt.Errorf("create parser: %w", err)
			}
			defer p.Close()

			for path := range workCh {
				select {
				case <-gctx.Done():
					return gctx.Err()
				case resultCh <- extractFile(gctx, p, path):
				}
			}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(resultCh)
	}()

	for res := range resultCh {
		e.consume(res, stats)
	}

	if err := g.Wait(); err != nil {
		return stats, fmt.Errorf("scan %s: %w", root, err)
	}

	e.logger.Info("scan complete",
		"root", root,
		"files", stats.Files,
		"packages", stats.Packages,
		"declarations", stats.Declarations,
		"failures", stats.Failures,
	)
	return stats, nil
}

// consume applies one extraction result to the Index.
func (e *Engine) consume(res fileResult, stats *ScanStats) {
	if res.err != nil {
		stats.Failures++
		e.logger.Warn("extraction failed", "path", res.path, "error", res.err)
		return
	}
	stats.Files++

	if res.pkg != "" {
		e.index.AddPackage(res.pkg, filepath.Dir(res.path))
		stats.Packages++
		return
	}

	for _, d := range res.decls {
		kind, ok := declKind(d.Kind)
		if !ok {
			e.logger.Debug("skipping declaration of unknown kind",
				"kind", d.Kind, "name", d.Name, "path", res.path)
			continue
		}
		refs := make([]index.Reference, 0, len(d.References))
		for _, r := range d.References {
			refs = append(refs, index.Reference{Name: r.Name, Location: toPoint(r.Location)})
		}
		e.index.AddDeclaration(d.Name, kind, res.path, toPoint(d.Location), refs)
		stats.Declarations++
	}
}

// extractFile parses one file and extracts either its package name (for a
// manifest) or its declarations.
func extractFile(ctx context.Context, p *parser.Parser, path string) fileResult {
	src, err := os.ReadFile(path)
	if err != nil {
		return fileResult{path: path, err: fmt.Errorf("read: %w", err)}
	}

	tree, err := p.Parse(ctx, src)
	if err != nil {
		return fileResult{path: path, err: fmt.Errorf("parse: %w", err)}
	}
	defer tree.Close()

	if filepath.Base(path) == manifestName {
		name, err := tree.PackageName()
		if err != nil {
			return fileResult{path: path, err: err}
		}
		return fileResult{path: path, pkg: name}
	}

	decls, err := tree.Declarations()
	if err != nil {
		return fileResult{path: path, err: err}
	}
	return fileResult{path: path, decls: decls}
}

// discoverFiles walks root collecting Swift files, skipping hidden
// directories and build artifacts.
func discoverFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || skipDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".swift") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}
	return paths, nil
}

// declKind maps the extractor's grammar keyword to a declaration kind.
// Actors count as classes for dependency purposes.
func declKind(s string) (index.Kind, bool) {
	switch s {
	case "struct":
		return index.Struct, true
	case "enum":
		return index.Enum, true
	case "class", "actor":
		return index.Class, true
	case "protocol":
		return index.Protocol, true
	case "extension":
		return index.Extension, true
	default:
		return 0, false
	}
}

func toPoint(p sitter.Point) index.Point {
	return index.Point{Row: p.Row, Column: p.Column}
}
