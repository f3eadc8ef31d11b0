/*
Package localsettings implements the local settings dialog of a glitch-style
social network front-end as a headless, embeddable engine.

An account's preferences are an immutable, typed snapshot (domain.Settings).
The dialog is a set of pages, each a list of fields bound to a preference
path; a field is enabled only when all of its dependencies are truthy and all
of its negative dependencies are falsy. Interacting with a field emits a
change event, which the Engine reduces into a new snapshot and persists.

# Architecture

The library follows a Hexagonal Architecture: pages and navigation live in
internal/runtime, storage is behind ports.SettingsStore (memory, file, Redis,
SQLite), and adapters expose the engine over HTTP, MCP and an interactive CLI.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/localsettings"
		"github.com/aretw0/localsettings/pkg/view"
	)

	func main() {
		eng := localsettings.New()
		ctx := context.Background()

		// Render the "Collapsed toots" page
		page, err := eng.RenderPage(ctx, "alice", 3)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(page.Title)

		// Turn collapsing off; dependent fields become disabled.
		if _, err := eng.Interact(ctx, "alice", "collapsed.enabled", view.Toggle(false)); err != nil {
			log.Fatal(err)
		}
	}
*/
package localsettings
