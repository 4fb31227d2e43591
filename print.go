package swiftdeps

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jhall/swiftdeps/internal/parser"
)

// PrintOptions selects which sections Print emits per file.
type PrintOptions struct {
	Declarations bool
	References   bool
	Full         bool // full parse tree
}

// printResult is one worker's formatted dump of one file.
type printResult struct {
	path string
	out  string
	err  error
}

// Print dumps the declarations, references and/or parse tree of every
// Swift file under root to w, one section block per file, in arrival
// order. It uses the same worker-pool machinery as Scan but never touches
// the Index.
func (e *Engine) Print(ctx context.Context, root string, w io.Writer, opts PrintOptions) error {
	paths, err := discoverFiles(root)
	if err != nil {
		return fmt.Errorf("print %s: %w", root, err)
	}
	if len(paths) == 0 {
		fmt.Fprintln(w, "Done. Processed 0 files.")
		return nil
	}

	workCh := make(chan string, len(paths))
	for _, p := range paths {
		workCh <- p
	}
	close(workCh)

	resultCh := make(chan printResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < min(e.workers, len(paths)); i++ {
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
				case resultCh <- formatFile(gctx, p, path, opts):
				}
			}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(resultCh)
	}()

	count := 0
	for res := range resultCh {
		if res.err != nil {
			e.logger.Warn("print failed", "path", res.path, "error", res.err)
			continue
		}
		count++
		fmt.Fprintln(w, res.out)
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("print %s: %w", root, err)
	}

	fmt.Fprintf(w, "Done. Processed %d files.\n", count)
	return nil
}

// formatFile renders one file's requested sections.
func formatFile(ctx context.Context, p *parser.Parser, path string, opts PrintOptions) printResult {
	src, err := os.ReadFile(path)
	if err != nil {
		return printResult{path: path, err: fmt.Errorf("read: %w", err)}
	}
	tree, err := p.Parse(ctx, src)
	if err != nil {
		return printResult{path: path, err: fmt.Errorf("parse: %w", err)}
	}
	defer tree.Close()

	var sb strings.Builder
	fmt.Fprintf(&sb, "# File %s\n", path)

	if opts.Declarations {
		sb.WriteString("\n## Declarations\n\n")
		decls, err := tree.Declarations()
		if err != nil {
			return printResult{path: path, err: err}
		}
		for _, d := range decls {
			fmt.Fprintf(&sb, "%s %s at %d:%d\n", d.Kind, d.Name, d.Location.Row, d.Location.Column)
		}
	}

	if opts.References {
		sb.WriteString("\n## References\n\n")
		for _, r := range tree.References() {
			fmt.Fprintf(&sb, "%s at %d:%d\n", r.Name, r.Location.Row, r.Location.Column)
		}
	}

	if opts.Full {
		sb.WriteString("\n## Parse tree\n\n")
		if err := tree.Dump(&sb); err != nil {
			return printResult{path: path, err: err}
		}
	}

	return printResult{path: path, out: sb.String()}
}
