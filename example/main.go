// Example runs one of the getting-started lessons, each a small scene drawn
// with a program built by the shader package.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell                      # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/ -list           # list lessons
//	go run ./example/ 1_3_1           # run a lesson by id
//
// Escape quits.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/go-theft-auto/shader"
	"github.com/go-theft-auto/shader/backend/opengl"
)

const defaultLesson = "transform"

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	var (
		width   = flag.Int("width", 800, "window width")
		height  = flag.Int("height", 600, "window height")
		list    = flag.Bool("list", false, "list lessons and exit")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [lesson id]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	shader.SetVerbose(*verbose)

	if *list {
		for _, l := range lessons {
			fmt.Printf("%-10s %s\n", l.id, l.title)
		}
		return
	}

	id := defaultLesson
	if flag.NArg() > 0 {
		id = flag.Arg(0)
	}
	l, ok := findLesson(id)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown lesson %q, see -list\n", id)
		os.Exit(2)
	}

	if err := run(l, *width, *height); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(l lesson, width, height int) error {
	window, err := opengl.NewWindow(opengl.WindowConfig{
		Width:  width,
		Height: height,
		Title:  l.id + " " + l.title,
		VSync:  true,
	})
	if err != nil {
		return err
	}
	defer window.Close()

	src, err := l.sources()
	if err != nil {
		return err
	}
	prog, err := shader.New(opengl.Context{}, src)
	if err != nil {
		if stage, ok := shader.FailedStage(err); ok {
			return fmt.Errorf("lesson %s: %s stage failed:\n%s", l.id, stage, shader.FailureLog(err))
		}
		return fmt.Errorf("lesson %s: %w", l.id, err)
	}
	defer prog.Delete()

	return l.run(window, prog)
}
