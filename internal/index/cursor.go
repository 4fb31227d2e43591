package index

import "fmt"

// ItemKind discriminates the three item variants a Cursor emits.
type ItemKind int

const (
	ItemType ItemKind = iota
	ItemDeclaration
	ItemDependency
)

func (k ItemKind) String() string {
	switch k {
	case ItemType:
		return "type"
	case ItemDeclaration:
		return "declaration"
	case ItemDependency:
		return "dependency"
	default:
		return fmt.Sprintf("ItemKind(%d)", int(k))
	}
}

// Item is one element of the depth-annotated walk sequence.
//
//   - ItemType: Type, Name and Origin are set.
//   - ItemDeclaration: Decl is set.
//   - ItemDependency: Type and Name identify the target, Location is the
//     reference site.
//
// Depth is the cursor's stack depth minus one at emission time.
type Item struct {
	Kind     ItemKind
	Type     TypeID
	Name     string
	Origin   Origin
	Decl     *Declaration
	Location Point
	Depth    int
}

type segmentKind int

const (
	segType segmentKind = iota
	segDecl
	segDep
)

// segment is one position on the cursor's path: a type being expanded, an
// offset into the current type's declaration list, or an offset into the
// current declaration's dependency list.
type segment struct {
	kind segmentKind
	typ  TypeID // segType only
	idx  int    // segDecl, segDep only
}

// Cursor is a stateful depth-first walk over the Index's type graph.
//
// Walking never follows back edges: a type fully entered earlier in the
// same walk is not re-expanded. The same type may still be emitted and
// expanded again if reached via a path that raced ahead of the visited
// marker; after its first full entry every further arrival is pruned.
//
// A Cursor is exhausted when Next returns false. It cannot be rewound;
// construct a new one via Index.Walk to restart.
type Cursor struct {
	index *Index

	// Path in the graph from the entry point. The stack grows
	// type → declaration index → dependency index per nesting level.
	path []segment

	// Types already entered in this walk. Grows only.
	visited map[TypeID]struct{}
}

func newCursor(x *Index, root TypeID) *Cursor {
	return &Cursor{
		index:   x,
		path:    []segment{{kind: segType, typ: root}},
		visited: make(map[TypeID]struct{}),
	}
}

// Next advances the walk and returns the next item. Each call loops through
// any number of pure bookkeeping transitions (backtracking, pruned back
// edges) before returning one item, and returns false when the path stack
// is exhausted.
func (c *Cursor) Next() (Item, bool) {
	for {
		if len(c.path) == 0 {
			return Item{}, false
		}
		top := c.path[len(c.path)-1]
		current, ok := c.currentType()
		if !ok {
			return Item{}, false
		}
		depth := len(c.path) - 1

		switch top.kind {
		case segType:
			if _, seen := c.visited[top.typ]; seen {
				// Pruned back edge: drop this arrival and advance the
				// parent dependency index past it.
				c.pop()
				c.advanceDependency()
				continue
			}
			c.visited[top.typ] = struct{}{}

			if len(current.Declarations) > 0 {
				c.push(segment{kind: segDecl})
			} else {
				// Declaration-less types are leaves.
				c.pop()
				c.advanceDependency()
			}

			return Item{
				Kind:   ItemType,
				Type:   top.typ,
				Name:   current.Name,
				Origin: current.Origin(),
				Depth:  depth,
			}, true

		case segDecl:
			if top.idx >= len(current.Declarations) {
				// Declaration index ran over, backtrack.
				c.pop()
				continue
			}
			decl := &current.Declarations[top.idx]

			if len(decl.deps) > 0 {
				c.push(segment{kind: segDep})
			} else if top.idx+1 < len(current.Declarations) {
				c.replaceTop(segment{kind: segDecl, idx: top.idx + 1})
			} else {
				c.pop()
			}

			return Item{
				Kind:  ItemDeclaration,
				Decl:  decl,
				Depth: depth,
			}, true

		case segDep:
			parent, ok := c.parent()
			if !ok || parent.kind != segDecl {
				panic("index: dependency segment without a declaration parent")
			}
			if parent.idx >= len(current.Declarations) {
				panic("index: dependency segment under an exhausted declaration")
			}
			decl := &current.Declarations[parent.idx]

			if top.idx >= len(decl.deps) {
				// Dependency index ran over: this declaration is done,
				// move the type on to its next declaration.
				c.pop()
				c.pop()
				c.push(segment{kind: segDecl, idx: parent.idx + 1})
				continue
			}
			dep := decl.deps[top.idx]

			target, ok := c.index.GetType(dep.Type)
			if !ok {
				panic(fmt.Sprintf("index: dangling dependency on type #%d", dep.Type))
			}

			if _, seen := c.visited[dep.Type]; !seen {
				// Enter the target on the next iteration.
				c.push(segment{kind: segType, typ: dep.Type})
			} else {
				// Back edge: report the edge but do not expand the target.
				c.replaceTop(segment{kind: segDep, idx: top.idx + 1})
			}

			return Item{
				Kind:     ItemDependency,
				Type:     dep.Type,
				Name:     target.Name,
				Location: dep.Location,
				Depth:    depth,
			}, true

		default:
			panic(fmt.Sprintf("index: unknown segment kind %d", top.kind))
		}
	}
}

// Collect drains the cursor into a slice. Mostly useful in tests; callers
// that want laziness should pull Next directly.
func (c *Cursor) Collect() []Item {
	var items []Item
	for {
		item, ok := c.Next()
		if !ok {
			return items
		}
		items = append(items, item)
	}
}

// currentType finds the type whose subtree the cursor is positioned in: the
// nearest type segment at or below the top of the path.
func (c *Cursor) currentType() (*Type, bool) {
	for i := len(c.path) - 1; i >= 0; i-- {
		if c.path[i].kind == segType {
			return c.index.GetType(c.path[i].typ)
		}
	}
	return nil, false
}

func (c *Cursor) parent() (segment, bool) {
	if len(c.path) < 2 {
		return segment{}, false
	}
	return c.path[len(c.path)-2], true
}

func (c *Cursor) push(s segment) {
	c.path = append(c.path, s)
}

func (c *Cursor) pop() segment {
	s := c.path[len(c.path)-1]
	c.path = c.path[:len(c.path)-1]
	return s
}

func (c *Cursor) replaceTop(s segment) {
	c.path[len(c.path)-1] = s
}

// advanceDependency bumps the dependency index now on top of the path, if
// any. Called after popping a type segment so the parent edge list moves
// past the type that was just finished (or pruned).
func (c *Cursor) advanceDependency() {
	if len(c.path) == 0 {
		return
	}
	top := c.path[len(c.path)-1]
	if top.kind == segDep {
		c.replaceTop(segment{kind: segDep, idx: top.idx + 1})
	}
}
