package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	xsdconv "github.com/reoring/xsdconv"
	"github.com/reoring/xsdconv/i18n"
)

const (
	exitOK      = 0
	exitFailed  = 1
	exitUsage   = 2
	usageString = `xsdconv CLI

Usage:
  xsdconv convert [-config f] [-lang en|ja] [-v] -type xs:int 42
  xsdconv batch   [-config f] [-lang en|ja] [-v] [-format yaml|json] -f cases.yaml
  xsdconv types
  xsdconv schema -type xs:date

Notes:
  - Results are written to stdout as one JSON document per line.
  - Exit status is 1 when a value failed to convert and 2 on usage or config errors.`
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, usageString)
		return exitUsage
	}
	switch args[0] {
	case "convert":
		return convertCmd(args[1:], stdout, stderr)
	case "batch":
		return batchCmd(args[1:], stdin, stdout, stderr)
	case "types":
		return typesCmd(args[1:], stdout, stderr)
	case "schema":
		return schemaCmd(args[1:], stdout, stderr)
	case "help", "-h", "-help", "--help":
		fmt.Fprintln(stdout, usageString)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown subcommand %q\n\n%s\n", args[0], usageString)
		return exitUsage
	}
}

// common holds the flags shared by the converting subcommands.
type common struct {
	configPath string
	lang       string
	verbose    bool
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "YAML config file")
	fs.StringVar(&c.lang, "lang", "", "message language (en, ja); overrides the config file")
	fs.BoolVar(&c.verbose, "v", false, "enable verbose logs")
}

// setup resolves configuration and returns the converter and logger to use.
func (c *common) setup(stderr io.Writer) (*xsdconv.Converter, zerolog.Logger, error) {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if c.lang != "" {
		cfg.Language = c.lang
	}
	if c.verbose {
		cfg.LogLevel = "debug"
	}
	if err := validate(cfg); err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("validate config: %w", err)
	}
	log := newLogger(stderr, cfg)
	log.Debug().Str("config", c.configPath).Str("lang", cfg.Language).Str("log_level", cfg.LogLevel).Msg("configuration loaded")
	return xsdconv.New(xsdconv.WithTranslator(i18n.ForLanguage(cfg.Language))), log, nil
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func convertCmd(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("convert", stderr)
	var cm common
	var typeName string
	cm.register(fs)
	fs.StringVar(&typeName, "type", "", "type name, e.g. xs:int")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if typeName == "" || fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}
	conv, log, err := cm.setup(stderr)
	if err != nil {
		return usageErrorf(stderr, "%v", err)
	}

	lex := fs.Arg(0)
	v, err := conv.Convert(lex, typeName)
	rec := newRecord(-1, xsdconv.Item{Value: lex, Type: typeName}, v, err)
	if err := json.NewEncoder(stdout).Encode(rec); err != nil {
		log.Error().Err(err).Msg("write result")
		return exitFailed
	}
	if err != nil {
		log.Warn().Str("type", typeName).Str("value", lex).Msg(rec.Error.Message)
		return exitFailed
	}
	log.Debug().Str("type", v.TypeName()).Stringer("kind", v.Kind()).Msg("converted")
	return exitOK
}

func batchCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := newFlagSet("batch", stderr)
	var cm common
	var file, format string
	cm.register(fs)
	fs.StringVar(&file, "f", "", "input file of {value, type} items (- for stdin)")
	fs.StringVar(&format, "format", "", "input format: yaml or json (default: from the file extension)")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if file == "" || fs.NArg() != 0 {
		fs.Usage()
		return exitUsage
	}
	conv, log, err := cm.setup(stderr)
	if err != nil {
		return usageErrorf(stderr, "%v", err)
	}

	var data []byte
	if file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return usageErrorf(stderr, "read input: %v", err)
	}
	items, err := decodeItems(data, inputFormat(file, format))
	if err != nil {
		return usageErrorf(stderr, "decode %s: %v", file, err)
	}
	log.Debug().Str("file", file).Int("items", len(items)).Msg("batch loaded")

	values, iss := conv.ConvertAll(items)
	failed := make(map[int]*xsdconv.ConversionError, len(iss))
	for _, it := range iss {
		if idx, err := strconv.Atoi(strings.TrimPrefix(it.Path, "/")); err == nil {
			failed[idx] = it.Err
		}
	}
	enc := json.NewEncoder(stdout)
	for i, it := range items {
		var convErr error
		if ce, ok := failed[i]; ok {
			convErr = ce
		}
		if err := enc.Encode(newRecord(i, it, values[i], convErr)); err != nil {
			log.Error().Err(err).Msg("write result")
			return exitFailed
		}
	}
	if len(iss) > 0 {
		log.Warn().Int("failed", len(iss)).Int("total", len(items)).Msg(iss.Error())
		return exitFailed
	}
	log.Info().Int("total", len(items)).Msg("batch converted")
	return exitOK
}

func typesCmd(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("types", stderr)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	reg := xsdconv.Default()
	for _, name := range reg.Names() {
		e, _ := reg.Lookup(name)
		fmt.Fprintf(stdout, "%s\t%s\n", name, e.Kind)
	}
	return exitOK
}

func schemaCmd(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("schema", stderr)
	var typeName string
	fs.StringVar(&typeName, "type", "", "type name, e.g. xs:date")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if typeName == "" {
		fs.Usage()
		return exitUsage
	}
	s, err := xsdconv.Default().JSONSchema(typeName)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailed
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailed
	}
	fmt.Fprintln(stdout, string(b))
	return exitOK
}

// inputFormat picks the batch decoder from -format or the file extension.
// YAML is the fallback since it also reads JSON documents.
func inputFormat(file, format string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	if strings.EqualFold(filepath.Ext(file), ".json") {
		return "json"
	}
	return "yaml"
}

func decodeItems(data []byte, format string) ([]xsdconv.Item, error) {
	var items []xsdconv.Item
	switch format {
	case "json":
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, err
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &items); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	for i, it := range items {
		if it.Type == "" {
			return nil, fmt.Errorf("item %d has no type", i)
		}
	}
	return items, nil
}

func usageErrorf(stderr io.Writer, format string, a ...any) int {
	fmt.Fprintf(stderr, "xsdconv: "+format+"\n", a...)
	return exitUsage
}
