package index

import (
	"fmt"
	"testing"
)

// buildBenchIndex creates a layered graph: width types per layer, each
// declaring dependencies on every type in the next layer, with back edges
// to layer zero so walks exercise pruning.
func buildBenchIndex(layers, width int) *Index {
	x := New()
	name := func(layer, i int) string {
		return fmt.Sprintf("T%d_%d", layer, i)
	}

	for layer := 0; layer < layers; layer++ {
		for i := 0; i < width; i++ {
			var refs []Reference
			if layer+1 < layers {
				for j := 0; j < width; j++ {
					refs = append(refs, Reference{
						Name:     name(layer+1, j),
						Location: Point{Row: uint32(j), Column: 0},
					})
				}
			}
			// Back edge to the root layer.
			refs = append(refs, Reference{Name: name(0, 0), Location: Point{Row: 99, Column: 0}})

			x.AddDeclaration(name(layer, i), Struct, fmt.Sprintf("./L%d.swift", layer),
				Point{Row: uint32(i), Column: 7}, refs)
		}
	}
	return x
}

func BenchmarkWalk(b *testing.B) {
	x := buildBenchIndex(6, 8)

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		cur, err := x.Walk("T0_0")
		if err != nil {
			b.Fatal(err)
		}
		for {
			if _, ok := cur.Next(); !ok {
				break
			}
		}
	}
}

func BenchmarkAddDeclaration(b *testing.B) {
	refs := []Reference{
		{Name: "A", Location: Point{Row: 1, Column: 0}},
		{Name: "B", Location: Point{Row: 2, Column: 0}},
		{Name: "C", Location: Point{Row: 3, Column: 0}},
	}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		x := New()
		for j := 0; j < 100; j++ {
			x.AddDeclaration(fmt.Sprintf("Type%d", j), Class, "./File.swift",
				Point{Row: uint32(j), Column: 6}, refs)
		}
	}
}
