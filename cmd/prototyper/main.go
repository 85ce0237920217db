// Command prototyper runs the idea prototyper API and exposes the scoring
// and rendering engines on the command line.
package main

import (
	"fmt"
	"os"

	_ "github.com/tbourn/go-idea-prototyper/docs"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

// @title           Idea Prototyper API
// @version         1.0
// @description     Scores product ideas and renders Tailwind page prototypes with per-idea versioning.
// @BasePath        /api
// @schemes         http https
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
