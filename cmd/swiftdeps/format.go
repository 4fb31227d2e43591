package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/jhall/swiftdeps"
)

var (
	localName      = color.New(color.FgGreen)
	externalMarker = color.New(color.FgYellow)
)

// renderDeps prints the cursor's item sequence as an indented tree:
//
//	AppDelegate:
//	- class in ./App/AppDelegate.swift 12:6, using types:
//	  LoginViewController (at 19:17):
//	  - class in ./UserFeature/LoginViewController.swift 11:13, using types:
//	    BaseViewController (at 11:34):
//	  Bundle (at 19:59) (external)
//
// One nesting level is three stack depths (type, declaration index,
// dependency index), so the indent level is depth/3. Non-root type items
// are folded into the dependency line that introduced them.
func renderDeps(w io.Writer, idx *swiftdeps.Index, cur *swiftdeps.Cursor) {
	for {
		item, ok := cur.Next()
		if !ok {
			return
		}
		indent := strings.Repeat("  ", item.Depth/3)

		switch item.Kind {
		case swiftdeps.ItemType:
			if item.Depth > 0 {
				continue
			}
			if item.Origin == swiftdeps.Local {
				fmt.Fprintf(w, "%s:\n", localName.Sprint(item.Name))
			} else {
				fmt.Fprintf(w, "%s %s\n", item.Name, externalMarker.Sprint("(external)"))
			}

		case swiftdeps.ItemDeclaration:
			file, _ := idx.FilePath(item.Decl)
			fmt.Fprintf(w, "%s- %s in %s %d:%d, using types:\n",
				indent, item.Decl.Kind, file, item.Decl.Location.Row, item.Decl.Location.Column)

		case swiftdeps.ItemDependency:
			indent += "  " // dependencies sit one level under their declaration
			target, ok := idx.GetType(item.Type)
			if ok && target.Origin() == swiftdeps.Local {
				fmt.Fprintf(w, "%s%s (at %d:%d):\n",
					indent, localName.Sprint(item.Name), item.Location.Row, item.Location.Column)
			} else {
				fmt.Fprintf(w, "%s%s (at %d:%d) %s\n",
					indent, item.Name, item.Location.Row, item.Location.Column,
					externalMarker.Sprint("(external)"))
			}
		}
	}
}
