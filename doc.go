// Package swiftdeps indexes Swift sources into a graph of named types,
// their declarations, and their cross-references, and answers "what does
// type X transitively depend on" as a depth-annotated, lazily produced
// sequence.
//
// # Pipeline
//
// A scan runs in two stages:
//
//  1. Extract: Swift files are discovered and fanned out across a worker
//     pool. Each worker parses with tree-sitter and runs the embedded
//     declaration/reference queries; Package.swift manifests yield the
//     package name instead.
//
//  2. Populate: a single consumer drains the workers' results and builds
//     the in-memory Index: packages, files, types, declarations, and the
//     multi-edge dependency list of every declaration. Types are identified
//     purely by name; a name that is referenced but never declared stays an
//     external placeholder.
//
// # Usage
//
// Create an Engine, scan a directory, and walk from a type:
//
//	e := swiftdeps.New()
//	stats, err := e.Scan(ctx, "path/to/project")
//	if err != nil { ... }
//
//	cur, err := e.Walk("AppDelegate")
//	if err != nil { ... }
//	for {
//		item, ok := cur.Next()
//		if !ok {
//			break
//		}
//		// item.Kind is ItemType, ItemDeclaration or ItemDependency;
//		// item.Depth positions it in the dependency tree.
//	}
//
// The walk is depth-first, non-recursive and cycle-safe: a type fully
// entered earlier in the same walk is reported but never re-expanded, so
// the sequence is finite for any graph. Dependency edges are emitted once
// per stored occurrence, duplicates included.
//
// The Index lives in process memory for one scan+query session; there is
// no persistence and no incremental re-indexing.
package swiftdeps
