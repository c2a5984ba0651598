package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/go-editorjs/editorjs"
)

var CLI struct {
	Input    string `arg:"" optional:"" help:"Editor.js document JSON file (defaults to stdin)"`
	Output   string `short:"o" help:"Write the HTML fragment to a file instead of stdout"`
	Sanitize bool   `short:"s" help:"Sanitize user-authored text fields"`
	Strict   bool   `help:"Fail on unknown block types instead of skipping them"`
	Verbose  bool   `short:"v" help:"Enable verbose logging"`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("editorjs-html"),
		kong.Description("Render an Editor.js block document to an HTML fragment."))

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("Render failed", "error", err)
		kctx.Exit(1)
	}
}

func run() error {
	var in io.Reader = os.Stdin
	if CLI.Input != "" {
		f, err := os.Open(CLI.Input)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	doc, err := editorjs.Decode(in)
	if err != nil {
		return err
	}
	slog.Debug("Document decoded", "blocks", len(doc))

	html, err := doc.HTMLWithOptions(editorjs.HTMLOptions{
		Sanitize:    CLI.Sanitize,
		FailUnknown: CLI.Strict,
	})
	if err != nil {
		return err
	}

	out := os.Stdout
	if CLI.Output != "" {
		f, err := os.Create(CLI.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if _, err := fmt.Fprintln(out, html); err != nil {
		return err
	}
	slog.Debug("Fragment written", "bytes", len(html))
	return nil
}
