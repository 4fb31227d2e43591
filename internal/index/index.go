// Package index holds the in-memory graph of packages, files, types and
// declarations built from one scan, and the cursor that walks it.
//
// The Index is populated by a single consumer goroutine draining scan
// results; it has no internal locking and must never be mutated
// concurrently. Once populated it is safe for any number of readers.
package index

import (
	"errors"
	"fmt"

	radix "github.com/armon/go-radix"
)

// IDs are offsets into the Index's storage slices, assigned once per
// distinct name/path and never reassigned.
type (
	PackageID int
	FileID    int
	TypeID    int
)

// Point is a 0-based row/column source location.
type Point struct {
	Row    uint32
	Column uint32
}

// Kind classifies a declaration site.
type Kind int

const (
	Struct Kind = iota
	Enum
	Class
	Protocol
	Extension
)

func (k Kind) String() string {
	switch k {
	case Struct:
		return "struct"
	case Enum:
		return "enum"
	case Class:
		return "class"
	case Protocol:
		return "protocol"
	case Extension:
		return "extension"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Origin says whether a type is declared in the scanned sources.
type Origin int

const (
	// Local types have at least one declaration in the scanned sources.
	Local Origin = iota
	// External types were referenced but never declared.
	External
)

func (o Origin) String() string {
	if o == Local {
		return "local"
	}
	return "external"
}

// Type is a named declarable entity, tracked once per name no matter how
// many times it is declared or extended.
type Type struct {
	Name string
	// Declarations in insertion order. A type extended in several places
	// has several entries; a type only ever referenced has none.
	Declarations []Declaration
}

// Origin is derived: External until the first declaration is attached,
// then permanently Local.
func (t *Type) Origin() Origin {
	if len(t.Declarations) == 0 {
		return External
	}
	return Local
}

// Dependency is one located use of a type's name inside a declaration body.
// Duplicate references to the same target at different locations are
// distinct edges.
type Dependency struct {
	Type     TypeID
	Location Point
}

// Declaration is one concrete declaration or extension site of a type.
type Declaration struct {
	Kind     Kind
	Location Point

	file FileID
	deps []Dependency
}

// Dependencies returns the declaration's edges in insertion order.
func (d *Declaration) Dependencies() []Dependency {
	return d.deps
}

// DependencyLocations aggregates the edge list per target: a declaration
// may reference the same type at several locations.
func (d *Declaration) DependencyLocations() map[TypeID][]Point {
	locs := make(map[TypeID][]Point)
	for _, dep := range d.deps {
		locs[dep.Type] = append(locs[dep.Type], dep.Location)
	}
	return locs
}

// Package is a named source package rooted at a directory prefix.
type Package struct {
	Name       string
	PathPrefix string
}

// Reference is an input record for AddDeclaration: a type name used at a
// location inside the declaration being added.
type Reference struct {
	Name     string
	Location Point
}

// ErrTypeNotFound is returned by Walk for a name the Index has never seen.
var ErrTypeNotFound = errors.New("type not found in index")

// Index is the mutable graph store. It only grows during a scan:
// declarations accumulate and are never removed or rewritten.
type Index struct {
	// Storage; offsets are the IDs.
	packages []Package
	files    []string
	types    []Type

	// Indexes.
	fileIDs        map[string]FileID
	packageIDs     map[string]PackageID
	typeIDs        map[string]TypeID
	packagesByPath *radix.Tree
}

// New creates an empty Index.
func New() *Index {
	return &Index{
		fileIDs:        make(map[string]FileID),
		packageIDs:     make(map[string]PackageID),
		typeIDs:        make(map[string]TypeID),
		packagesByPath: radix.New(),
	}
}

// TypeID resolves a type name to its id.
func (x *Index) TypeID(name string) (TypeID, bool) {
	id, ok := x.typeIDs[name]
	return id, ok
}

// GetType returns the type stored under id.
func (x *Index) GetType(id TypeID) (*Type, bool) {
	if id < 0 || int(id) >= len(x.types) {
		return nil, false
	}
	return &x.types[id], true
}

// FilePath returns the path of the file the declaration was made in.
func (x *Index) FilePath(d *Declaration) (string, bool) {
	if int(d.file) >= len(x.files) {
		return "", false
	}
	return x.files[d.file], true
}

// PackageByName resolves a package by exact name.
func (x *Index) PackageByName(name string) (*Package, bool) {
	id, ok := x.packageIDs[name]
	if !ok {
		return nil, false
	}
	return &x.packages[id], true
}

// PackageForPath resolves the package owning a file path by longest
// path-prefix match.
func (x *Index) PackageForPath(path string) (*Package, bool) {
	_, v, ok := x.packagesByPath.LongestPrefix(path)
	if !ok {
		return nil, false
	}
	return &x.packages[v.(PackageID)], true
}

// Walk returns a fresh cursor rooted at the named type. It fails only if
// the name was never seen by the Index.
func (x *Index) Walk(typeName string) (*Cursor, error) {
	id, ok := x.TypeID(typeName)
	if !ok {
		return nil, fmt.Errorf("walk %q: %w", typeName, ErrTypeNotFound)
	}
	return newCursor(x, id), nil
}

// AddPackage records a package, indexing it by exact name (last write wins
// on a duplicate name) and by path prefix. Duplicate insertions persist in
// storage; only the name index is overwritten.
func (x *Index) AddPackage(name, pathPrefix string) {
	x.packages = append(x.packages, Package{Name: name, PathPrefix: pathPrefix})
	id := PackageID(len(x.packages) - 1)

	x.packageIDs[name] = id
	x.packagesByPath.Insert(pathPrefix, id)
}

// AddDeclaration records one declaration site of a type. Every reference is
// resolved (or created as a placeholder) first, so the declaration's edge
// list is complete at construction time. The declaration is appended to the
// existing type with that name, or a new type is created holding exactly
// this declaration. Returns the type's id.
func (x *Index) AddDeclaration(name string, kind Kind, file string, loc Point, refs []Reference) TypeID {
	fileID, ok := x.fileIDs[file]
	if !ok {
		x.files = append(x.files, file)
		fileID = FileID(len(x.files) - 1)
		x.fileIDs[file] = fileID
	}

	deps := make([]Dependency, 0, len(refs))
	for _, ref := range refs {
		deps = append(deps, Dependency{
			Type:     x.AddReference(ref.Name),
			Location: ref.Location,
		})
	}

	decl := Declaration{
		Kind:     kind,
		Location: loc,
		file:     fileID,
		deps:     deps,
	}

	if id, ok := x.typeIDs[name]; ok {
		x.types[id].Declarations = append(x.types[id].Declarations, decl)
		return id
	}

	x.types = append(x.types, Type{Name: name, Declarations: []Declaration{decl}})
	id := TypeID(len(x.types) - 1)
	x.typeIDs[name] = id
	return id
}

// AddReference resolves a type name to an id, creating an empty placeholder
// type if the name has not been seen. Idempotent: repeated calls with the
// same name return the same id.
func (x *Index) AddReference(name string) TypeID {
	if id, ok := x.typeIDs[name]; ok {
		return id
	}

	x.types = append(x.types, Type{Name: name})
	id := TypeID(len(x.types) - 1)
	x.typeIDs[name] = id
	return id
}
