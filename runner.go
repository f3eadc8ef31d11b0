package localsettings

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/localsettings/internal/presentation/tui"
	"github.com/aretw0/localsettings/internal/runtime"
	"github.com/aretw0/localsettings/pkg/domain"
	"github.com/aretw0/localsettings/pkg/view"
)

// Runner drives the settings dialog over line-oriented IO.
// This allows for easy testing and integration with different frontends (CLI, TUI, etc).
//
// Commands: a number selects a navigation entry; "toggle <field>",
// "set <field> <text>" and "choose <field> <value>" interact with a field
// of the current page; "exit" or "quit" leaves without closing.
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
}

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a new Runner. Input and Output must be set before Run.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes the dialog loop for account until the dialog is closed or
// input ends.
func (r *Runner) Run(ctx context.Context, engine *Engine, account string) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lineReader := bufio.NewReader(r.Input)
	writer := r.Output

	var emitErr error
	snapshot := func() domain.Settings {
		s, err := engine.Settings(ctx, account)
		if err != nil {
			engine.logger.Warn("failed to load settings, showing defaults", "account", account, "error", err)
			return domain.DefaultSettings()
		}
		return s
	}
	emit := func(c domain.Change) {
		_, emitErr = engine.Change(ctx, account, c)
	}
	dialog := runtime.NewDialog(engine.renderer, snapshot, emit, nil)

	if !r.Headless {
		fmt.Fprintln(writer, "--- Local settings ---")
	}

	for {
		current := dialog.View()
		if current.Closed {
			break
		}
		r.print(tui.Markdown(current))

		fmt.Fprint(writer, "> ")
		text, err := lineReader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && text != "") {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("input error: %w", err)
		}
		line := strings.TrimSpace(text)

		if line == "exit" || line == "quit" {
			fmt.Fprintln(writer, "Bye!")
			break
		}
		if line == "" {
			continue
		}

		if entry, convErr := strconv.Atoi(line); convErr == nil {
			res, navErr := dialog.Navigate(entry)
			switch {
			case navErr != nil:
				fmt.Fprintf(writer, "error: %v\n", navErr)
			case res.Href != "":
				fmt.Fprintf(writer, "Open %s\n", res.Href)
			case res.Closed:
				fmt.Fprintln(writer, "Bye!")
				return nil
			}
			continue
		}

		fieldID, input, parseErr := parseCommand(line, current.Page)
		if parseErr != nil {
			fmt.Fprintf(writer, "error: %v\n", parseErr)
			continue
		}
		emitErr = nil
		if _, err := dialog.Interact(fieldID, input); err != nil {
			fmt.Fprintf(writer, "error: %v\n", err)
			continue
		}
		if emitErr != nil {
			fmt.Fprintf(writer, "error: %v\n", emitErr)
		}
	}
	return nil
}

func (r *Runner) print(markdown string) {
	output := markdown
	if r.Renderer != nil {
		if rendered, err := r.Renderer(markdown); err == nil {
			output = rendered
		}
	}
	fmt.Fprintln(r.Output, strings.TrimSpace(output))
}

// parseCommand turns a command line into an interaction with a field of page.
func parseCommand(line string, page view.Page) (string, view.Input, error) {
	verb, rest, _ := strings.Cut(line, " ")
	fieldID, arg, _ := strings.Cut(strings.TrimSpace(rest), " ")
	if fieldID == "" {
		return "", view.Input{}, fmt.Errorf("usage: %s <field> [value]", verb)
	}

	switch verb {
	case "toggle":
		c, ok := page.Control(fieldID)
		if !ok {
			return "", view.Input{}, fmt.Errorf("%w: %s", domain.ErrUnknownField, fieldID)
		}
		return fieldID, view.Toggle(!c.Checked), nil
	case "set":
		return fieldID, view.Type(arg), nil
	case "choose":
		return fieldID, view.Choose(strings.TrimSpace(arg)), nil
	default:
		return "", view.Input{}, fmt.Errorf("unknown command %q", verb)
	}
}
