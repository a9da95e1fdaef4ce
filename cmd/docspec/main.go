// Command docspec extracts a documentation schema from annotated TypeScript
// declarations and serves or writes it for documentation site generators.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/gnana997/docspec/pkg/docschema"
	"github.com/gnana997/docspec/pkg/mcp"
	"github.com/gnana997/docspec/pkg/parser"
	"github.com/gnana997/docspec/pkg/project"
	"github.com/gnana997/docspec/pkg/schemaquery"
	"github.com/gnana997/docspec/pkg/util"
	"github.com/gnana997/docspec/pkg/watcher"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch command := os.Args[1]; command {
	case "generate":
		err = runGenerate(os.Args[2:])
	case "watch":
		err = runWatch(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	case "version":
		fmt.Printf("docspec %s\n", version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "docspec: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: docspec <command> [flags] [entry-file]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  generate   Extract the documentation schema of an entry file")
	fmt.Println("  watch      Regenerate the schema whenever source files change")
	fmt.Println("  serve      Expose the schema over an MCP stdio server")
	fmt.Println("  version    Print version")
	fmt.Println("  help       Show this help message")
}

// cliOptions are the flag values shared by generate, watch, and serve.
type cliOptions struct {
	configPath  string
	out         string
	format      string
	logLevel    string
	strictOrder bool
	strictDocs  bool
	sources     multiFlag
}

type multiFlag []string

func (m *multiFlag) String() string { return fmt.Sprint(*m) }
func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

func newFlagSet(name string, opts *cliOptions) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.StringVar(&opts.configPath, "config", "", "path to config file (default .docspec/config.yaml)")
	fs.StringVar(&opts.out, "out", "", "output file (default stdout, or config output)")
	fs.StringVar(&opts.format, "format", "", "output encoding: json or yaml (default json)")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.BoolVar(&opts.strictOrder, "strict-order", false, "emit an ordered list preserving declaration order instead of a map")
	fs.BoolVar(&opts.strictDocs, "strict-comments", false, "require explicit description tags; do not promote plain comment text")
	fs.Var(&opts.sources, "source", "glob pattern of additional resolvable files (repeatable)")
	return fs
}

// session wires the logger, parser manager, loader, and engine for one
// command invocation.
type session struct {
	opts    cliOptions
	cfg     *ProjectConfig
	entry   string
	pm      *parser.Manager
	loader  *project.Loader
	projCfg project.Config
	engCfg  docschema.Config
}

func newSession(name string, args []string) (*session, error) {
	var opts cliOptions
	fs := newFlagSet(name, &opts)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := loadProjectConfig(opts.configPath)
	if err != nil {
		return nil, err
	}

	entry := fs.Arg(0)
	if entry == "" {
		entry = cfg.Entry
	}
	if entry == "" {
		return nil, fmt.Errorf("no entry file given (argument or config entry)")
	}

	logger := util.NewLogger(util.LoggerConfig{
		Level:  util.LogLevel(opts.logLevel),
		Format: util.FormatText,
		Output: os.Stderr,
	})
	util.SetDefault(logger)

	sources := cfg.SourceFiles
	if len(opts.sources) > 0 {
		sources = opts.sources
	}

	pm := parser.NewManager(logger)
	projCfg := project.Config{SourceFilesPaths: sources}
	loader, err := project.NewLoader(pm, projCfg, logger)
	if err != nil {
		pm.Close()
		return nil, err
	}

	return &session{
		opts:    opts,
		cfg:     cfg,
		entry:   entry,
		pm:      pm,
		loader:  loader,
		projCfg: projCfg,
		engCfg: docschema.Config{
			DefaultTypeMap:         cfg.DefaultTypeMap,
			StrictComment:          opts.strictDocs || cfg.StrictComments,
			StrictDeclarationOrder: opts.strictOrder || cfg.StrictDeclarationOrder,
			ExcludedTypeNames:      cfg.ExcludedTypeNames,
		},
	}, nil
}

func (s *session) close() {
	s.loader.Close()
	s.pm.Close()
}

// generate runs one full extraction pass and returns the result, or an
// error when the entry file is absent from the project.
func (s *session) generate() (*docschema.Result, error) {
	proj, err := s.loader.Load(s.entry, s.projCfg)
	if err != nil {
		return nil, err
	}

	gen := docschema.New(proj, s.pm, s.engCfg, nil)
	result, err := gen.Generate(s.entry)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("entry file not found: %s", s.entry)
	}
	return result, nil
}

// write encodes the result to the configured destination.
func (s *session) write(result *docschema.Result) error {
	format := s.opts.format
	if format == "" {
		format = s.cfg.Format
	}

	var payload any
	if s.engCfg.StrictDeclarationOrder {
		payload = result.Entries
	} else {
		payload = result.Map()
	}

	var data []byte
	var err error
	switch format {
	case "", "json":
		data, err = json.MarshalIndent(payload, "", "  ")
		data = append(data, '\n')
	case "yaml":
		data, err = yaml.Marshal(payload)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}

	out := s.opts.out
	if out == "" {
		out = s.cfg.Output
	}
	if out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(out, data, 0o644)
}

func runGenerate(args []string) error {
	s, err := newSession("generate", args)
	if err != nil {
		return err
	}
	defer s.close()

	result, err := s.generate()
	if err != nil {
		return err
	}
	return s.write(result)
}

func runWatch(args []string) error {
	s, err := newSession("watch", args)
	if err != nil {
		return err
	}
	defer s.close()

	result, err := s.generate()
	if err != nil {
		return err
	}
	if err := s.write(result); err != nil {
		return err
	}

	proj, err := s.loader.Load(s.entry, s.projCfg)
	if err != nil {
		return err
	}

	w, err := watcher.New(func(path string) {
		result, err := s.generate()
		if err != nil {
			fmt.Fprintf(os.Stderr, "docspec: regeneration failed: %v\n", err)
			return
		}
		if err := s.write(result); err != nil {
			fmt.Fprintf(os.Stderr, "docspec: write failed: %v\n", err)
		}
	}, watcher.DefaultOptions(), nil)
	if err != nil {
		return err
	}
	defer w.Stop()

	if err := w.Watch(proj.Files()); err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}

func runServe(args []string) error {
	s, err := newSession("serve", args)
	if err != nil {
		return err
	}
	defer s.close()

	result, err := s.generate()
	if err != nil {
		return err
	}

	qs := schemaquery.New(result)
	srv := mcp.NewServer(qs, nil)
	return srv.ServeStdio()
}
