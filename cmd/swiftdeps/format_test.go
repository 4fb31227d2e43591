package main

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhall/swiftdeps/internal/index"
)

func init() {
	color.NoColor = true
}

func render(t *testing.T, x *index.Index, typeName string) string {
	t.Helper()
	cur, err := x.Walk(typeName)
	require.NoError(t, err)

	var sb strings.Builder
	renderDeps(&sb, x, cur)
	return sb.String()
}

func TestRenderDeps_ExternalRoot(t *testing.T) {
	x := index.New()
	x.AddReference("MyType")

	assert.Equal(t, "MyType (external)\n", render(t, x, "MyType"))
}

func TestRenderDeps_LocalTypeWithLeafDependencies(t *testing.T) {
	x := index.New()
	x.AddDeclaration("MyType", index.Struct, "./MyType.swift", index.Point{Row: 10, Column: 20},
		[]index.Reference{
			{Name: "Ext", Location: index.Point{Row: 3, Column: 10}},
		})

	expected := strings.Join([]string{
		"MyType:",
		"- struct in ./MyType.swift 10:20, using types:",
		"  Ext (at 3:10) (external)",
		"",
	}, "\n")
	assert.Equal(t, expected, render(t, x, "MyType"))
}

func TestRenderDeps_NestedLocalDependencyAndBackEdge(t *testing.T) {
	x := index.New()
	x.AddDeclaration("A", index.Class, "./A.swift", index.Point{Row: 0, Column: 6},
		[]index.Reference{
			{Name: "Ext", Location: index.Point{Row: 1, Column: 8}},
			{Name: "B", Location: index.Point{Row: 2, Column: 8}},
		})
	x.AddDeclaration("B", index.Class, "./B.swift", index.Point{Row: 0, Column: 6},
		[]index.Reference{
			{Name: "Ext", Location: index.Point{Row: 1, Column: 8}},
			{Name: "A", Location: index.Point{Row: 2, Column: 8}},
		})

	expected := strings.Join([]string{
		"A:",
		"- class in ./A.swift 0:6, using types:",
		"  Ext (at 1:8) (external)",
		"  B (at 2:8):",
		"  - class in ./B.swift 0:6, using types:",
		"    Ext (at 1:8) (external)",
		"    A (at 2:8):",
		"",
	}, "\n")
	assert.Equal(t, expected, render(t, x, "A"))
}

func TestRenderDeps_TwoDeclarationsShareIndentLevel(t *testing.T) {
	x := index.New()
	x.AddDeclaration("MyType", index.Struct, "./MyType.swift", index.Point{Row: 10, Column: 20}, nil)
	x.AddDeclaration("MyType", index.Extension, "./MyType+Extras.swift", index.Point{Row: 5, Column: 10}, nil)

	expected := strings.Join([]string{
		"MyType:",
		"- struct in ./MyType.swift 10:20, using types:",
		"- extension in ./MyType+Extras.swift 5:10, using types:",
		"",
	}, "\n")
	assert.Equal(t, expected, render(t, x, "MyType"))
}
