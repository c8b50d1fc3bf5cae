// Command textfx-raylib shows a text particle effect in a raylib window.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"

	"github.com/gogpu/textfx/integration/raylibhost"
	"github.com/gogpu/textfx/internal/cli"
)

func init() {
	// raylib must run on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	var f cli.Flags
	f.Register(flag.CommandLine)
	title := flag.String("title", "textfx", "window title")
	flag.Parse()

	setup, err := f.Resolve(os.Stderr)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := raylibhost.Run(ctx, setup.Element(&f), setup.Config, *title, setup.Options...); err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}
}
