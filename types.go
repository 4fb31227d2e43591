package swiftdeps

import "github.com/jhall/swiftdeps/internal/index"

// Aliases for the internal index types that appear in the Engine API, so
// consumers never import internal/index directly.

type Index = index.Index
type Cursor = index.Cursor
type Item = index.Item
type ItemKind = index.ItemKind
type Kind = index.Kind
type Origin = index.Origin
type Point = index.Point
type Type = index.Type
type TypeID = index.TypeID
type Declaration = index.Declaration
type Dependency = index.Dependency
type Package = index.Package
type Reference = index.Reference

const (
	Struct    = index.Struct
	Enum      = index.Enum
	Class     = index.Class
	Protocol  = index.Protocol
	Extension = index.Extension

	Local    = index.Local
	External = index.External

	ItemType        = index.ItemType
	ItemDeclaration = index.ItemDeclaration
	ItemDependency  = index.ItemDependency
)

// ErrTypeNotFound is returned by Walk for a name the Index has never seen.
var ErrTypeNotFound = index.ErrTypeNotFound
