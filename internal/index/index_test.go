package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddReference_IsIdempotent(t *testing.T) {
	t.Parallel()
	x := New()

	first := x.AddReference("MyType")
	for iter := 0; iter < 5; iter++ {
		assert.Equal(t, first, x.AddReference("MyType"))
	}

	typ, ok := x.GetType(first)
	require.True(t, ok)
	assert.Equal(t, "MyType", typ.Name)
	assert.Empty(t, typ.Declarations, "placeholder types carry no declarations")
}

func TestAddDeclaration_AttachesToPlaceholderType(t *testing.T) {
	t.Parallel()
	x := New()

	refID := x.AddReference("MyType")
	declID := x.AddDeclaration("MyType", Struct, "./MyType.swift", pt(10, 20), nil)

	assert.Equal(t, refID, declID, "a declaration attaches to the placeholder's id")

	typ, ok := x.GetType(declID)
	require.True(t, ok)
	assert.Len(t, typ.Declarations, 1)
}

func TestOrigin_TransitionsExternalToLocalOnce(t *testing.T) {
	t.Parallel()
	x := New()

	id := x.AddReference("MyType")
	typ, ok := x.GetType(id)
	require.True(t, ok)
	assert.Equal(t, External, typ.Origin())

	x.AddDeclaration("MyType", Class, "./MyType.swift", pt(1, 6), nil)
	typ, ok = x.GetType(id)
	require.True(t, ok)
	assert.Equal(t, Local, typ.Origin())

	// Further references never flip a type back to External.
	x.AddReference("MyType")
	typ, ok = x.GetType(id)
	require.True(t, ok)
	assert.Equal(t, Local, typ.Origin())
}

func TestAddDeclaration_ResolvesReferencesBeforeTheDeclaredType(t *testing.T) {
	t.Parallel()
	x := New()

	id := x.AddDeclaration("MyType", Enum, "./MyType.swift", pt(10, 20), []Reference{
		{Name: "First", Location: pt(1, 0)},
		{Name: "Second", Location: pt(2, 0)},
	})

	// Referenced names get ids before the declared name.
	firstID, ok := x.TypeID("First")
	require.True(t, ok)
	secondID, ok := x.TypeID("Second")
	require.True(t, ok)
	assert.Equal(t, TypeID(0), firstID)
	assert.Equal(t, TypeID(1), secondID)
	assert.Equal(t, TypeID(2), id)

	typ, _ := x.GetType(id)
	deps := typ.Declarations[0].Dependencies()
	require.Len(t, deps, 2)
	assert.Equal(t, Dependency{Type: firstID, Location: pt(1, 0)}, deps[0])
	assert.Equal(t, Dependency{Type: secondID, Location: pt(2, 0)}, deps[1])
}

func TestAddDeclaration_KeepsDuplicateEdges(t *testing.T) {
	t.Parallel()
	x := New()

	x.AddDeclaration("Holder", Struct, "./Holder.swift", pt(0, 7), []Reference{
		{Name: "Value", Location: pt(1, 8)},
		{Name: "Value", Location: pt(4, 12)},
	})

	d := decl(t, x, "Holder", 0)
	require.Len(t, d.Dependencies(), 2, "duplicate references are distinct edges")

	valueID, _ := x.TypeID("Value")
	locs := d.DependencyLocations()
	assert.Equal(t, []Point{pt(1, 8), pt(4, 12)}, locs[valueID])
}

func TestFilePath_InternsPathsOncePerFile(t *testing.T) {
	t.Parallel()
	x := New()

	x.AddDeclaration("A", Struct, "./Shared.swift", pt(0, 7), nil)
	x.AddDeclaration("B", Struct, "./Shared.swift", pt(5, 7), nil)
	x.AddDeclaration("C", Struct, "./Other.swift", pt(0, 7), nil)

	pathA, ok := x.FilePath(decl(t, x, "A", 0))
	require.True(t, ok)
	pathB, ok := x.FilePath(decl(t, x, "B", 0))
	require.True(t, ok)
	pathC, ok := x.FilePath(decl(t, x, "C", 0))
	require.True(t, ok)

	assert.Equal(t, "./Shared.swift", pathA)
	assert.Equal(t, "./Shared.swift", pathB)
	assert.Equal(t, "./Other.swift", pathC)
	assert.Len(t, x.files, 2, "paths are interned once")
}

func TestWalk_UnknownNameFails(t *testing.T) {
	t.Parallel()
	x := New()
	x.AddReference("Known")

	_, err := x.Walk("Unknown")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTypeNotFound)

	// Walking never creates a placeholder for the missing name.
	_, ok := x.TypeID("Unknown")
	assert.False(t, ok)
}

func TestAddPackage_LookupByNameAndPathPrefix(t *testing.T) {
	t.Parallel()
	x := New()

	x.AddPackage("Core", "./Packages/CoreModules/Core")
	x.AddPackage("UserFeature", "./Packages/Features/UserFeature")

	pkg, ok := x.PackageByName("Core")
	require.True(t, ok)
	assert.Equal(t, "./Packages/CoreModules/Core", pkg.PathPrefix)

	pkg, ok = x.PackageForPath("./Packages/Features/UserFeature/Sources/Login.swift")
	require.True(t, ok)
	assert.Equal(t, "UserFeature", pkg.Name)

	_, ok = x.PackageForPath("./Elsewhere/Main.swift")
	assert.False(t, ok)
}

func TestAddPackage_LongestPrefixWins(t *testing.T) {
	t.Parallel()
	x := New()

	x.AddPackage("Workspace", "./App")
	x.AddPackage("Feature", "./App/Features/Chat")

	pkg, ok := x.PackageForPath("./App/Features/Chat/Sources/ChatView.swift")
	require.True(t, ok)
	assert.Equal(t, "Feature", pkg.Name)

	pkg, ok = x.PackageForPath("./App/Main.swift")
	require.True(t, ok)
	assert.Equal(t, "Workspace", pkg.Name)
}

func TestAddPackage_DuplicateNameLastWriteWinsOnNameIndex(t *testing.T) {
	t.Parallel()
	x := New()

	x.AddPackage("Core", "./A")
	x.AddPackage("Core", "./B")

	pkg, ok := x.PackageByName("Core")
	require.True(t, ok)
	assert.Equal(t, "./B", pkg.PathPrefix)

	// Both insertions persist in storage; path lookup still resolves each.
	pkgA, ok := x.PackageForPath("./A/File.swift")
	require.True(t, ok)
	assert.Equal(t, "./A", pkgA.PathPrefix)
	assert.Len(t, x.packages, 2)
}

func TestKindAndOriginStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "struct", Struct.String())
	assert.Equal(t, "enum", Enum.String())
	assert.Equal(t, "class", Class.String())
	assert.Equal(t, "protocol", Protocol.String())
	assert.Equal(t, "extension", Extension.String())
	assert.Equal(t, "local", Local.String())
	assert.Equal(t, "external", External.String())
}
