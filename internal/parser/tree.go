package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// ErrNoPackageName is returned when a manifest contains no Package(name:)
// declaration.
var ErrNoPackageName = errors.New("no Package declaration found")

// Tree is one file's parse result, bound to the Parser whose queries
// extract from it.
type Tree struct {
	parser *Parser
	src    []byte
	tree   *sitter.Tree
}

// Close releases the underlying tree-sitter tree. Extracted Declarations
// and References stay valid; they hold plain Go values.
func (t *Tree) Close() {
	t.tree.Close()
}

// PackageName extracts the package name from a Package.swift manifest:
// the name argument of the first Package(name: "...") call.
func (t *Tree) PackageName() (string, error) {
	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(t.parser.packageName, t.tree.RootNode())

	for {
		match, ok := qc.NextMatch()
		if !ok {
			return "", ErrNoPackageName
		}
		match = qc.FilterPredicates(match, t.src)

		for _, capture := range match.Captures {
			if t.parser.packageName.CaptureNameForId(capture.Index) == "package_name" {
				return capture.Node.Content(t.src), nil
			}
		}
	}
}

// Declarations extracts the file's type declarations in source order, each
// with the references found inside its body.
func (t *Tree) Declarations() ([]Declaration, error) {
	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(t.parser.declarations, t.tree.RootNode())

	var declarations []Declaration
	for {
		match, ok := qc.NextMatch()
		if !ok {
			return declarations, nil
		}
		match = qc.FilterPredicates(match, t.src)

		var kindNode, nameNode, declNode *sitter.Node
		for _, capture := range match.Captures {
			switch t.parser.declarations.CaptureNameForId(capture.Index) {
			case "kind":
				kindNode = capture.Node
			case "name":
				nameNode = capture.Node
			case "declaration":
				declNode = capture.Node
			}
		}
		if kindNode == nil || nameNode == nil || declNode == nil {
			continue
		}

		declarations = append(declarations, Declaration{
			Kind:       kindNode.Content(t.src),
			Name:       nameNode.Content(t.src),
			Location:   nameNode.StartPoint(),
			References: t.referencesIn(declNode),
		})
	}
}

// References extracts every type reference in the file, in source order.
func (t *Tree) References() []Reference {
	return t.referencesIn(t.tree.RootNode())
}

// referencesIn runs the reference query against one subtree.
func (t *Tree) referencesIn(node *sitter.Node) []Reference {
	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(t.parser.references, node)

	var references []Reference
	for {
		match, ok := qc.NextMatch()
		if !ok {
			return references
		}
		match = qc.FilterPredicates(match, t.src)

		for _, capture := range match.Captures {
			if t.parser.references.CaptureNameForId(capture.Index) != "name" {
				continue
			}
			references = append(references, Reference{
				Name:     capture.Node.Content(t.src),
				Location: capture.Node.StartPoint(),
			})
		}
	}
}

// Dump writes an indented rendering of the parse tree, one node per line,
// with leaf text inlined. The walk is iterative via a TreeCursor.
func (t *Tree) Dump(w io.Writer) error {
	cursor := sitter.NewTreeCursor(t.tree.RootNode())
	defer cursor.Close()

	depth := 0
	for {
		node := cursor.CurrentNode()

		if _, err := io.WriteString(w, strings.Repeat("  ", depth)); err != nil {
			return err
		}
		if field := cursor.CurrentFieldName(); field != "" {
			if _, err := fmt.Fprintf(w, "%s: ", field); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "(%s", node.Type()); err != nil {
			return err
		}
		if node.ChildCount() == 0 && node.IsNamed() {
			if _, err := fmt.Fprintf(w, " '%s'", node.Content(t.src)); err != nil {
				return err
			}
		}

		// Descend.
		if cursor.GoToFirstChild() {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
			depth++
			continue
		}

		// Otherwise move to a sibling.
		if cursor.GoToNextSibling() {
			if _, err := io.WriteString(w, ")\n"); err != nil {
				return err
			}
			continue
		}

		// Otherwise unwind until a sibling exists.
		for {
			if !cursor.GoToParent() {
				// Back at the root.
				_, err := io.WriteString(w, ")\n")
				return err
			}
			if _, err := io.WriteString(w, ")"); err != nil {
				return err
			}
			depth--

			if cursor.GoToNextSibling() {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
				break
			}
		}
	}
}

// String renders the parse tree as Dump does.
func (t *Tree) String() string {
	var sb strings.Builder
	_ = t.Dump(&sb)
	return sb.String()
}
