package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"vela/internal/diagfmt"
	"vela/internal/front"
	"vela/internal/parser"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: vela <file.vl>")
		os.Exit(1)
	}
	path := os.Args[1]

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		os.Exit(1)
	}

	compiler, err := front.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	channel := compiler.DiagChannel(path)
	p := parser.New(path, source, compiler.Interner, compiler.Universe, compiler.Store, channel, parser.Config{
		PointerSize: compiler.Target.PointerSize,
		IntSize:     compiler.Target.IntSize,
	})
	unit := p.Parse()
	compiler.MarkCompiled(path)
	elapsed := time.Since(start)

	reporter := diagfmt.NewReporter(path, string(source))
	for _, d := range channel.All() {
		fmt.Print(reporter.Format(d))
	}

	if channel.HasErrors() {
		color.Red("compilation failed after %s", formatDuration(elapsed))
		os.Exit(1)
	}

	fmt.Printf("%d top-level items\n", len(unit.Items))
	color.Green("compiled %s in %s", path, formatDuration(elapsed))
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1e6)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
