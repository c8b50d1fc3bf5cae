// Command textfx-gpu shows a text particle effect in a gogpu window.
// Space pauses and resumes the animation.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/gogpu/textfx/integration/gpuwindow"
	"github.com/gogpu/textfx/internal/cli"
)

func main() {
	var f cli.Flags
	f.Register(flag.CommandLine)
	title := flag.String("title", "textfx", "window title")
	flag.Parse()

	setup, err := f.Resolve(os.Stderr)
	if err != nil {
		log.Fatal(err)
	}

	w, err := gpuwindow.New(setup.Element(&f), gpuwindow.Config{Title: *title, Effect: setup.Config}, setup.Options...)
	if err != nil {
		log.Fatal(err)
	}
	if err := w.Run(); err != nil {
		log.Fatal(err)
	}
}
