// Command csv2json converts a CSV file to pretty-printed JSON.
//
//	csv2json [-o out.json] [-html] [-encoding name] [-v] [file.csv]
//
// With no file, or "-", input is read from stdin and written to stdout.
// A named file is written next to itself as <name>.json unless -o is set.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/csv2json/internal/config"
	"github.com/JonMunkholm/csv2json/internal/core"
	"github.com/JonMunkholm/csv2json/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is main without the process exit, so it can be tested.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("csv2json", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.String("o", "", "output file (default: <input>.json, or stdout for stdin)")
	asHTML := fs.Bool("html", false, "write syntax-highlighted HTML instead of JSON")
	encName := fs.String("encoding", "", "input character encoding (default: detect)")
	verbose := fs.Bool("v", false, "log conversion details to stderr")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: csv2json [-o out.json] [-html] [-encoding name] [-v] [file.csv]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return 2
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	slog.SetDefault(logging.New(stderr, level, "text"))

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "csv2json: %v\n", err)
		return 1
	}
	svc := core.NewService(cfg, nil)

	input := fs.Arg(0)
	if err := convertFile(svc, input, *out, *encName, *asHTML, stdin, stdout); err != nil {
		if !core.IsUserError(err) {
			fmt.Fprintf(stderr, "csv2json: %v\n", err)
			return 1
		}
		msg := core.MapError(err)
		fmt.Fprintf(stderr, "csv2json: %s (%s)\n", msg.Message, msg.Code)
		return 1
	}
	return 0
}

func convertFile(svc *core.Service, input, out, encName string, asHTML bool, stdin io.Reader, stdout io.Writer) error {
	var (
		r    io.Reader = stdin
		name string
	)
	if input != "" && input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
		name = input
	}

	res, _, err := svc.ConvertUpload(context.Background(), core.SourceCLI, r, name, encName)
	if err != nil {
		return err
	}

	body := res.JSON
	if asHTML {
		body = `<pre class="json">` + res.HTML + "</pre>"
	}

	if out == "" && name != "" {
		out = outputPath(name, asHTML)
	}
	if out == "" || out == "-" {
		_, err := io.WriteString(stdout, body+"\n")
		return err
	}
	if err := os.WriteFile(out, []byte(body+"\n"), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	slog.Info("wrote output", "path", out, "records", res.Records)
	return nil
}

// outputPath places the converted file next to the input.
func outputPath(input string, asHTML bool) string {
	name := core.DownloadName(filepath.Base(input))
	if asHTML {
		name = strings.TrimSuffix(name, ".json") + ".html"
	}
	return filepath.Join(filepath.Dir(input), name)
}
