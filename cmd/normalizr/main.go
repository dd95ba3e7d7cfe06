package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	normalizr "github.com/reoring/normalizr"
	"github.com/reoring/normalizr/i18n"
	"github.com/reoring/normalizr/schemafile"
	"github.com/reoring/normalizr/source"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type config struct {
	schemaPath    string
	typeName      string
	inFormat      string
	outFormat     string
	strip         bool
	lenientUnions bool
	maxEntities   int
	maxDepth      int
	compact       bool
	lang          string
	verbose       bool
	input         string
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	fs := flag.NewFlagSet("normalizr", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "normalizr: flatten a JSON/YAML document into entities\n\nUsage:\n  normalizr -schema schema.yaml [-type T] [flags] [input|-]\n\nFlags:")
		fs.PrintDefaults()
	}
	cfg := &config{}
	fs.StringVar(&cfg.schemaPath, "schema", "", "YAML schema file (required)")
	fs.StringVar(&cfg.typeName, "type", "", "root type name (defaults to the schema's root)")
	fs.StringVar(&cfg.inFormat, "in", "", "input format: json|yaml (defaults to the input file extension)")
	fs.StringVar(&cfg.outFormat, "out", "json", "output format: json|yaml")
	fs.BoolVar(&cfg.strip, "strip", false, "drop undeclared fields from entities")
	fs.BoolVar(&cfg.lenientUnions, "lenient-unions", false, "keep raw values that match no union alternative")
	fs.IntVar(&cfg.maxEntities, "max-entities", 0, "fail when more records than this are flattened (0 = unlimited)")
	fs.IntVar(&cfg.maxDepth, "max-depth", normalizr.DefaultMaxDepth, "fail when a field value nests deeper than this (0 = unlimited)")
	fs.BoolVar(&cfg.compact, "compact", false, "compact JSON output")
	fs.StringVar(&cfg.lang, "lang", "en", "message language: en|ja")
	fs.BoolVar(&cfg.verbose, "v", false, "enable debug logs")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.schemaPath == "" {
		fs.Usage()
		return nil, errors.New("-schema is required")
	}
	switch fs.NArg() {
	case 0:
		cfg.input = "-"
	case 1:
		cfg.input = fs.Arg(0)
	default:
		return nil, fmt.Errorf("expected at most one input, got %d", fs.NArg())
	}
	return cfg, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "normalizr: %v\n", err)
		return 2
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	i18n.SetLanguage(cfg.lang)

	if err := normalizeFile(cfg, logger, stdin, stdout); err != nil {
		logIssues(logger, err)
		return 1
	}
	return 0
}

func normalizeFile(cfg *config, logger *slog.Logger, stdin io.Reader, stdout io.Writer) error {
	root, err := loadRoot(cfg)
	if err != nil {
		return err
	}
	logger.Debug("schema loaded", "path", cfg.schemaPath, "type", root.Name, "fields", len(root.Fields))

	doc, err := readInput(cfg, stdin)
	if err != nil {
		return err
	}

	var schema normalizr.Node = root
	if _, isSeq := doc.([]any); isSeq {
		schema = normalizr.ArrayOf(root)
	}

	opts := []normalizr.Option{
		normalizr.WithStrictUnions(!cfg.lenientUnions),
		normalizr.WithMaxEntities(cfg.maxEntities),
		normalizr.WithMaxDepth(cfg.maxDepth),
	}
	if cfg.strip {
		opts = append(opts, normalizr.WithUnknown(normalizr.UnknownStrip))
	}
	out, err := normalizr.Normalize(doc, schema, opts...)
	if err != nil {
		return err
	}
	for typ, bucket := range out.Entities {
		logger.Debug("entities", "type", typ, "count", len(bucket))
	}

	outFormat, err := source.ParseFormat(cfg.outFormat)
	if err != nil {
		return err
	}
	return source.Encode(stdout, out, outFormat, !cfg.compact)
}

func loadRoot(cfg *config) (*normalizr.Record, error) {
	f, err := os.Open(cfg.schemaPath)
	if err != nil {
		return nil, fmt.Errorf("opening schema: %w", err)
	}
	defer f.Close()
	set, err := schemafile.Load(f)
	if err != nil {
		return nil, err
	}
	if cfg.typeName == "" {
		r, ok := set.Root()
		if !ok {
			return nil, errors.New("schema declares no root; pass -type")
		}
		return r, nil
	}
	r, ok := set.Type(cfg.typeName)
	if !ok {
		return nil, fmt.Errorf("schema has no type %q (have %v)", cfg.typeName, set.Names())
	}
	return r, nil
}

func readInput(cfg *config, stdin io.Reader) (any, error) {
	format := source.FormatFor(cfg.input)
	if cfg.inFormat != "" {
		f, err := source.ParseFormat(cfg.inFormat)
		if err != nil {
			return nil, err
		}
		format = f
	}
	if cfg.input == "-" {
		return source.Decode(stdin, format)
	}
	f, err := os.Open(cfg.input)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()
	doc, err := source.Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("error processing %s: %w", cfg.input, err)
	}
	return doc, nil
}

func logIssues(logger *slog.Logger, err error) {
	iss, ok := normalizr.AsIssues(err)
	if !ok {
		logger.Error("normalize failed", "err", err)
		return
	}
	for _, it := range iss {
		attrs := []any{"code", it.Code, "path", it.Path}
		if it.Hint != "" {
			attrs = append(attrs, "hint", it.Hint)
		}
		logger.Error(it.Message, attrs...)
	}
}
