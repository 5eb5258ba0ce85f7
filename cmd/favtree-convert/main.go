package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/badjano/favtree/internal/storage"
	"github.com/badjano/favtree/internal/tree"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: favtree-convert [options] <input> [output]

Converts a favourites file between storage formats. Formats are detected
from the file extension unless given explicitly.

Options:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Arguments:
  input    Favourites file to read (.json, .yaml, .txt, .db)
  output   File to write (optional)
           If not provided, writes the text format to stdout

Examples:
  # Print a SQLite database as text
  favtree-convert favourites.db

  # Convert JSON to YAML
  favtree-convert favourites.json favourites.yaml
`)
	}

	from := flag.String("from", "auto", "input format")
	to := flag.String("to", "auto", "output format")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := convert(context.Background(), args, *from, *to); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func convert(ctx context.Context, args []string, from, to string) error {
	inFormat, err := storage.ParseFormat(from)
	if err != nil {
		return err
	}
	in, err := storage.Open(args[0], inFormat)
	if err != nil {
		return err
	}
	if !in.Exists() {
		return fmt.Errorf("%s does not exist", args[0])
	}

	elements, err := in.Load(ctx)
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	if len(elements) > 0 {
		if err := tree.ValidateDepths(elements); err != nil {
			return fmt.Errorf("%s is not a valid favourites file: %w", args[0], err)
		}
	}

	if len(args) < 2 {
		return storage.EncodeText(os.Stdout, elements)
	}

	outFormat, err := storage.ParseFormat(to)
	if err != nil {
		return err
	}
	out, err := storage.Open(args[1], outFormat)
	if err != nil {
		return err
	}
	if err := out.Save(ctx, elements); err != nil {
		return fmt.Errorf("writing %s: %w", args[1], err)
	}

	fmt.Fprintf(os.Stderr, "Converted %d elements to %s\n", len(elements), out.Path())
	return nil
}
