// Package frontend parses batches of gollum files concurrently.
package frontend

import (
	"context"
	"os"
	"runtime"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"gopkg.microglot.org/gollum.go/internal/exc"
	"gopkg.microglot.org/gollum.go/internal/grammar"
	"gopkg.microglot.org/gollum.go/internal/idl"
	"gopkg.microglot.org/gollum.go/internal/parser"
	"gopkg.microglot.org/gollum.go/internal/target"
)

type Option func(f *frontend) error

func OptionWithFS(fs idl.FileSystem) Option {
	return func(f *frontend) error {
		f.FS = fs
		return nil
	}
}

func OptionWithLookupEnv(lookupEnv func(string) (string, bool)) Option {
	return func(f *frontend) error {
		f.LookupENV = lookupEnv
		return nil
	}
}

// OptionWithExcReporter installs the reporter that collects syntax errors
// across every batch. The batch stops at the first syntax error the reporter
// treats as fatal. Each Parse call returns only the exceptions it reported.
// Without this option every Parse call gets a fresh reporter.
func OptionWithExcReporter(reporter exc.Reporter) Option {
	return func(f *frontend) error {
		f.NewReporter = func() exc.Reporter { return reporter }
		return nil
	}
}

func OptionWithMaxConcurrency(n int) Option {
	return func(f *frontend) error {
		if n < 1 {
			return errors.Errorf("max concurrency must be at least 1, got %d", n)
		}
		f.MaxConcurrency = n
		return nil
	}
}

func New(opts ...Option) (idl.Frontend, error) {
	f := &frontend{}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}
	if f.LookupENV == nil {
		f.LookupENV = os.LookupEnv
	}
	if f.FS == nil {
		dfs, err := NewDefaultFS(f.LookupENV)
		if err != nil {
			return nil, err
		}
		f.FS = dfs
	}
	if f.MaxConcurrency == 0 {
		max := runtime.GOMAXPROCS(-1)
		cpus := runtime.NumCPU()
		if max > cpus {
			max = cpus
		}
		f.MaxConcurrency = max
	}
	if f.NewReporter == nil {
		f.NewReporter = func() exc.Reporter {
			return exc.NewReporter(exc.SyntaxCodes())
		}
	}
	f.Parser = parser.New(grammar.New())
	return f, nil
}

type frontend struct {
	LookupENV      func(string) (string, bool)
	FS             idl.FileSystem
	MaxConcurrency int
	NewReporter    func() exc.Reporter
	Parser         *parser.Parser
}

func (self *frontend) Parse(ctx context.Context, req *idl.ParseRequest) (*idl.ParseResponse, error) {
	files := make([]idl.File, 0, len(req.Files))
	seen := make(map[string]bool)
	for _, f := range req.Files {
		uri := target.Normalize(f)
		in, err := self.FS.Open(ctx, uri)
		if err != nil {
			return nil, err
		}
		for _, inf := range in {
			if inf.Kind(ctx) == idl.FileKindNone {
				if glog.V(5) {
					glog.Infof("frontend: skipping %s of unknown kind", inf.Path(ctx))
				}
				continue
			}
			if seen[inf.Path(ctx)] {
				continue
			}
			seen[inf.Path(ctx)] = true
			files = append(files, inf)
		}
	}
	if glog.V(5) {
		glog.Infof("frontend: parsing %d files from %d targets with concurrency %d", len(files), len(req.Files), self.MaxConcurrency)
	}

	reporter := self.NewReporter()
	before := len(reporter.Reported())

	// results keeps discovery order regardless of completion order.
	results := make([]*idl.Module, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(self.MaxConcurrency)
	for x, file := range files {
		x, file := x, file
		g.Go(func() error {
			module, err := self.parseFile(gctx, reporter, file)
			results[x] = module
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	modules := make([]*idl.Module, 0, len(results))
	for _, module := range results {
		if module != nil {
			modules = append(modules, module)
		}
	}
	resp := &idl.ParseResponse{Modules: modules}
	if caught := reporter.Reported()[before:]; len(caught) > 0 {
		return resp, exc.MultiException(caught)
	}
	return resp, nil
}

// parseFile returns a nil module when the file has a syntax error the reporter
// accepted as non-fatal.
func (self *frontend) parseFile(ctx context.Context, reporter exc.Reporter, file idl.File) (*idl.Module, error) {
	path := file.Path(ctx)
	root, err := self.Parser.ParseFile(ctx, file)
	if err != nil {
		if e, ok := err.(exc.Exception); ok && exc.IsSyntax(e.Code()) {
			if glog.V(5) {
				glog.Infof("frontend: %s rejected: %v", path, e)
			}
			if fatal := reporter.Report(e); fatal != nil {
				return nil, fatal
			}
			return nil, nil
		}
		return nil, err
	}
	return &idl.Module{
		URI:  path,
		Kind: file.Kind(ctx),
		Root: root,
	}, nil
}
