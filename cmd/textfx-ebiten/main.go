// Command textfx-ebiten shows a text particle effect in an Ebitengine window.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/gogpu/textfx/integration/ebitenhost"
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

	game, err := ebitenhost.NewGame(setup.Element(&f), setup.Config, setup.Options...)
	if err != nil {
		log.Fatal(err)
	}
	if err := ebitenhost.Run(game, *title); err != nil {
		log.Fatal(err)
	}
}
