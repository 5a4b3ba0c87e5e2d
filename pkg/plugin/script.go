package plugin

import (
	"context"
	"fmt"
	"go/parser"
	"go/token"
	"os"

	"github.com/aretw0/baxter/pkg/action"
	"github.com/aretw0/baxter/pkg/domain"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

type (
	nameFunc    = func() string
	versionFunc = func() float64
	respondFunc = func(input, mainTemplate, errorTemplate string, ask func(string) (string, error)) (string, error)
)

// scriptPlugin is a plugin evaluated from Go source.
type scriptPlugin struct {
	path    string
	name    string
	version float64
	respond respondFunc
}

func (s *scriptPlugin) Name() string     { return s.name }
func (s *scriptPlugin) Version() float64 { return s.version }

// GetResponse runs the script. A script without GetResponse reports
// domain.ErrHandlerContract.
func (s *scriptPlugin) GetResponse(ctx context.Context, call action.Call) (string, error) {
	if s.respond == nil {
		return "", fmt.Errorf("%s: %w", s.path, domain.ErrHandlerContract)
	}
	ask := func(prompt string) (string, error) {
		return call.Ask(ctx, prompt)
	}
	return s.respond(call.Input, call.MainTemplate, call.ErrorTemplate, ask)
}

// LoadScript evaluates the plugin script at path.
// A script without Name() yields a plugin with an empty name, which discovery
// skips. Evaluation errors and wrongly typed definitions are returned.
func LoadScript(path string) (p Plugin, err error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	file, err := parser.ParseFile(token.NewFileSet(), path, src, parser.PackageClauseOnly)
	if err != nil {
		return nil, err
	}
	pkg := file.Name.Name

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("failed to load stdlib: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("script panicked: %v", r)
		}
	}()

	if _, err := i.Eval(string(src)); err != nil {
		return nil, fmt.Errorf("evaluation failed: %w", err)
	}

	sp := &scriptPlugin{path: path, version: DefaultVersion}

	if v, err := i.Eval(pkg + ".Name"); err == nil {
		fn, ok := v.Interface().(nameFunc)
		if !ok {
			return nil, fmt.Errorf("Name has type %s, want func() string", v.Type())
		}
		sp.name = fn()
	}

	if v, err := i.Eval(pkg + ".Version"); err == nil {
		fn, ok := v.Interface().(versionFunc)
		if !ok {
			return nil, fmt.Errorf("Version has type %s, want func() float64", v.Type())
		}
		sp.version = fn()
	}

	if v, err := i.Eval(pkg + ".GetResponse"); err == nil {
		fn, ok := v.Interface().(respondFunc)
		if !ok {
			return nil, fmt.Errorf("GetResponse has type %s, want func(string, string, string, func(string) (string, error)) (string, error)", v.Type())
		}
		sp.respond = fn
	}

	return sp, nil
}
