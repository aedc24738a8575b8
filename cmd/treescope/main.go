package main

import (
	"flag"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/structree/structree"
	"github.com/structree/structree/treescope"
)

func main() {
	var (
		color       = flag.Bool("color", false, "Force colored output")
		depth       = flag.Int("depth", 16, "Maximum rendering depth")
		list        = flag.Bool("list", false, "List registered demo types and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	entries := demoEntries()

	if *interactive {
		if err := runInteractive(entries); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *list {
		listTypes(entries)
		return
	}

	r := treescope.NewRenderer(
		treescope.WithColor(*color),
		treescope.WithMaxDepth(*depth),
	)
	for _, e := range entries {
		fmt.Printf("%s = %s\n\n", e.name, r.Render(e.value))
	}
}

func listTypes(entries []demoEntry) {
	for _, e := range entries {
		t, ok := structree.Lookup(reflect.TypeOf(e.value))
		if !ok {
			continue
		}
		var fields []string
		for _, f := range t.Fields() {
			fields = append(fields, fmt.Sprintf("%s %s (%s)", f.Name, f.Type, f.Role))
		}
		fmt.Printf("%s: %s\n  %s\n", e.name, t.Name(), strings.Join(fields, "\n  "))
	}
}
