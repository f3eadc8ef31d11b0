package localsettings_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/localsettings"
	"github.com/aretw0/localsettings/pkg/view"
)

// ExampleEngine_Interact shows how a disabled dependency greys out a field.
func ExampleEngine_Interact() {
	eng := localsettings.New()
	ctx := context.Background()

	if _, err := eng.Interact(ctx, "alice", "collapsed.enabled", view.Toggle(false)); err != nil {
		log.Fatal(err)
	}

	page, err := eng.RenderPage(ctx, "alice", 3)
	if err != nil {
		log.Fatal(err)
	}
	bar, _ := page.Control("collapsed.show_action_bar")
	fmt.Println(page.Title, bar.Enabled)
	// Output: Collapsed toots false
}
