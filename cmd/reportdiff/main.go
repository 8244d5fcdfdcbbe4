package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/dgallion1/reportdiff/internal/align"
	"github.com/dgallion1/reportdiff/internal/analyzer"
	"github.com/dgallion1/reportdiff/internal/config"
	"github.com/dgallion1/reportdiff/internal/parser"
	"github.com/dgallion1/reportdiff/internal/render"
	"github.com/dgallion1/reportdiff/internal/report"
	"github.com/dgallion1/reportdiff/internal/segment"
)

const usage = `usage: reportdiff <command> [flags] args

commands:
  compare   [flags] OLD NEW   compare two reports with a report definition
  outline   [flags] FILE      print the section outline of a report
  diff      [flags] OLD NEW   align two texts and print the marked-up cells
  fragments [flags] FILE.pdf  dump the positioned lines of a PDF as TSV
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type app struct {
	cfg    config.Config
	log    *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg := config.Load()
	log := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		return 1
	}

	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	a := &app{cfg: cfg, log: log, stdout: stdout, stderr: stderr}

	var err error
	switch args[0] {
	case "compare":
		err = a.compare(ctx, args[1:])
	case "outline":
		err = a.outline(args[1:])
	case "diff":
		err = a.diff(args[1:])
	case "fragments":
		err = a.fragments(args[1:])
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp), errors.Is(err, errUsage):
		return 2
	default:
		log.Error("command failed", "command", args[0], "error", err)
		return 1
	}
}

var errUsage = errors.New("usage error")

func (a *app) flagSet(name, args string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "usage: reportdiff %s [flags] %s\n", name, args)
		fs.PrintDefaults()
	}
	return fs
}

func (a *app) compare(ctx context.Context, args []string) error {
	fs := a.flagSet("compare", "OLD NEW")
	def := fs.String("def", "monetary-report", "builtin definition name or path to a YAML definition")
	format := fs.String("format", "html", "output format: html, md or xlsx")
	out := fs.String("o", "", "output file (default stdout)")
	workers := fs.Int("workers", a.cfg.Workers, "rows compared concurrently")
	ratio := fs.Float64("keyword-ratio", 0, "keyword filter ratio, overrides the definition when positive")
	runes := fs.Bool("runes", false, "compare rune by rune instead of by dictionary words")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return errUsage
	}

	definition, err := loadDefinition(*def)
	if err != nil {
		return err
	}
	seg, err := a.segmenter(*runes)
	if err != nil {
		return err
	}

	oldRes, err := a.loadOutline(fs.Arg(0), "")
	if err != nil {
		return err
	}
	newRes, err := a.loadOutline(fs.Arg(1), "")
	if err != nil {
		return err
	}

	comparer := &report.Comparer{
		Aligner:      align.Aligner{Segmenter: seg},
		Workers:      *workers,
		KeywordRatio: *ratio,
		Log:          a.log,
	}
	rep, err := comparer.Compare(ctx, oldRes.Tree, newRes.Tree, definition)
	if err != nil {
		return err
	}

	return a.writeOutput(*out, func(w io.Writer) error {
		r := render.New(a.cfg.DeleteColor, a.cfg.InsertColor)
		switch strings.ToLower(*format) {
		case "html":
			page, err := r.Page(rep)
			if err != nil {
				return err
			}
			_, err = io.WriteString(w, page)
			return err
		case "md", "markdown":
			md, err := r.Markdown(rep)
			if err != nil {
				return err
			}
			_, err = io.WriteString(w, md)
			return err
		case "xlsx":
			return r.WriteXLSX(w, rep)
		default:
			return fmt.Errorf("unknown format %q", *format)
		}
	})
}

func (a *app) outline(args []string) error {
	fs := a.flagSet("outline", "FILE")
	title := fs.String("title", "", "document name (default: taken from the cover page)")
	paragraphs := fs.Bool("paragraphs", false, "print paragraphs under their headings")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}

	res, err := a.loadOutline(fs.Arg(0), *title)
	if err != nil {
		return err
	}

	tree := res.Tree
	var werr error
	tree.Walk(func(i int, breadcrumb []string) {
		if werr != nil {
			return
		}
		node := tree.Node(i)
		depth := len(breadcrumb)
		if i != tree.Root() {
			depth++
		}
		indent := strings.Repeat("  ", depth)

		line := indent + node.Title
		if node.Page != "" {
			line += fmt.Sprintf("  [p. %s]", node.Page)
		}
		if _, werr = fmt.Fprintln(a.stdout, line); werr != nil {
			return
		}
		if !*paragraphs {
			return
		}
		for _, p := range node.Paragraphs {
			if _, werr = fmt.Fprintf(a.stdout, "%s  | %s\n", indent, p); werr != nil {
				return
			}
		}
	})
	return werr
}

func (a *app) diff(args []string) error {
	fs := a.flagSet("diff", "OLD NEW")
	runes := fs.Bool("runes", false, "compare rune by rune instead of by dictionary words")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return errUsage
	}

	seg, err := a.segmenter(*runes)
	if err != nil {
		return err
	}
	al, err := align.Aligner{Segmenter: seg}.Align(fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}

	r := render.New(a.cfg.DeleteColor, a.cfg.InsertColor)
	oldCell, err := r.Cell(al.A, true)
	if err != nil {
		return err
	}
	newCell, err := r.Cell(al.B, false)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.stdout, "old: %s\nnew: %s\n", oldCell, newCell)
	return err
}

func (a *app) fragments(args []string) error {
	fs := a.flagSet("fragments", "FILE")
	out := fs.String("o", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}

	doc, err := a.parse(fs.Arg(0))
	if err != nil {
		return err
	}
	if len(doc.Fragments) == 0 && len(doc.Blocks) > 0 {
		return fmt.Errorf("%s has no positioned lines", fs.Arg(0))
	}
	return a.writeOutput(*out, func(w io.Writer) error {
		return parser.WriteFragments(w, doc.Fragments)
	})
}

func (a *app) parse(path string) (*parser.Document, error) {
	p, err := parser.ForFile(path, parser.Options{
		PDFPassword:       a.cfg.PDFPassword,
		FallbackPdftotext: a.cfg.PDFFallbackPdftotext,
	})
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := p.Parse(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

func (a *app) loadOutline(path, title string) (*analyzer.Result, error) {
	doc, err := a.parse(path)
	if err != nil {
		return nil, err
	}

	res := doc.Outline(analyzer.Options{
		TitleMaxLength:  a.cfg.TitleMaxLength,
		MarginTolerance: a.cfg.MarginTolerance,
		ColumnHeightCap: a.cfg.ColumnHeightCap,
		Title:           title,
	})
	a.log.Info("outline built",
		"file", path,
		"title", res.Tree.Title(),
		"pages", res.Pages,
		"blocks", res.Blocks,
		"nodes", len(res.Tree.Nodes),
		"dominant_height", res.DominantHeight,
		"dominant_margin", res.DominantMargin,
	)
	return res, nil
}

func (a *app) segmenter(runes bool) (segment.Segmenter, error) {
	if runes {
		return segment.Runes, nil
	}
	seg, err := segment.New(a.cfg.UserDict)
	if err != nil {
		return nil, err
	}
	a.log.Debug("dictionary loaded", "user_dict", a.cfg.UserDict)
	return seg, nil
}

// loadDefinition treats names ending in .yaml or .yml as files and anything
// else as a builtin definition.
func loadDefinition(name string) (*report.Definition, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return report.LoadDefinition(name)
	}
	return report.Builtin(name)
}

func (a *app) writeOutput(path string, write func(io.Writer) error) error {
	if path == "" {
		return write(a.stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
