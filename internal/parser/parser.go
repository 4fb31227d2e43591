// Package parser extracts type declarations and references from Swift
// source using tree-sitter. A Parser owns the compiled queries and is NOT
// safe for concurrent use; create one per worker goroutine.
package parser

import (
	"context"
	_ "embed"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/swift"
)

//go:embed queries/declarations.scm
var declarationsQuery []byte

//go:embed queries/references.scm
var referencesQuery []byte

//go:embed queries/package_name.scm
var packageNameQuery []byte

// Declaration is one declaration or extension site found in a file, with
// the type references used inside it, in source order.
type Declaration struct {
	// Kind is the grammar keyword: "struct", "enum", "class", "actor",
	// "protocol" or "extension".
	Kind       string
	Name       string
	Location   sitter.Point
	References []Reference
}

// Reference is a located use of a type name.
type Reference struct {
	Name     string
	Location sitter.Point
}

// Parser wraps the Swift grammar and its compiled extraction queries.
type Parser struct {
	lang         *sitter.Language
	declarations *sitter.Query
	references   *sitter.Query
	packageName  *sitter.Query
}

// New compiles the embedded Swift queries. Compilation failure means the
// queries no longer match the grammar version and is a build defect.
func New() (*Parser, error) {
	lang := swift.GetLanguage()

	declarations, err := sitter.NewQuery(declarationsQuery, lang)
	if err != nil {
		return nil, fmt.Errorf("parser: compile declarations query: %w", err)
	}
	references, err := sitter.NewQuery(referencesQuery, lang)
	if err != nil {
		declarations.Close()
		return nil, fmt.Errorf("parser: compile references query: %w", err)
	}
	packageName, err := sitter.NewQuery(packageNameQuery, lang)
	if err != nil {
		declarations.Close()
		references.Close()
		return nil, fmt.Errorf("parser: compile package name query: %w", err)
	}

	return &Parser{
		lang:         lang,
		declarations: declarations,
		references:   references,
		packageName:  packageName,
	}, nil
}

// Close releases the compiled queries.
func (p *Parser) Close() {
	p.declarations.Close()
	p.references.Close()
	p.packageName.Close()
}

// Parse parses Swift source into a Tree. The Tree keeps the source bytes so
// captures can be resolved back to text.
func (p *Parser) Parse(ctx context.Context, src []byte) (*Tree, error) {
	sp := sitter.NewParser()
	defer sp.Close()
	sp.SetLanguage(p.lang)

	tree, err := sp.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parser: parse: %w", err)
	}

	return &Tree{parser: p, src: src, tree: tree}, nil
}
