// Command lineedit-demo is a minimal embedding example, grounded on
// the shipped example binaries. It is reference tooling alongside the
// library, not part of its public API surface.
package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/rivereed/lineedit"
)

type options struct {
	Mode string `short:"m" long:"mode" choice:"emacs" choice:"vi" choice:"helix" default:"emacs" description:"editing mode"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		os.Exit(1)
	}

	mode := lineedit.Emacs
	switch opts.Mode {
	case "vi":
		mode = lineedit.Vi
	case "helix":
		mode = lineedit.Helix
	}

	sh := lineedit.New(lineedit.WithEditingMode(mode))

	for {
		sig, err := sh.ReadLine()
		if err != nil {
			fmt.Fprintln(os.Stderr, "lineedit-demo:", err)
			os.Exit(1)
		}

		switch sig.Kind {
		case lineedit.SignalSuccess:
			fmt.Println(sig.Line)
		case lineedit.SignalCtrlC:
			fmt.Println("^C")
			continue
		case lineedit.SignalCtrlD:
			return
		}
	}
}
