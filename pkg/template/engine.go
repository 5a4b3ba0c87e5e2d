package template

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aretw0/baxter/pkg/domain"
	"github.com/aretw0/baxter/pkg/ports"
)

var (
	openerPattern = regexp.MustCompile(`%if_(.*?)%`)
	closerPattern = regexp.MustCompile(`%if_(.*?)_end%`)
	slotPattern   = regexp.MustCompile(`\{([^{}]+)\}`)
)

const (
	elseMarker    = "%else%"
	elseEndMarker = "%else_end%"
)

// Engine evaluates conditional blocks against a settings source.
type Engine struct {
	settings ports.Settings
}

// NewEngine creates an engine reading from settings. A nil source behaves as
// an empty configuration.
func NewEngine(settings ports.Settings) *Engine {
	return &Engine{settings: settings}
}

func (e *Engine) exists(key string) bool {
	return e.settings != nil && e.settings.Exists(key)
}

// Render evaluates the first conditional block of tmpl.
// It returns a *domain.TemplateSyntaxError for malformed markup and a
// *domain.TemplateMissingKeyError when a true block references an unknown setting.
func (e *Engine) Render(tmpl string) (string, error) {
	open := openerPattern.FindStringSubmatchIndex(tmpl)
	if open == nil || !closerPattern.MatchString(tmpl) {
		return tmpl, nil
	}

	name := tmpl[open[2]:open[3]]
	opener := "%if_" + name + "%"
	closer := "%if_" + name + "_end%"

	closeIdx := strings.Index(tmpl[open[1]:], closer)
	if closeIdx < 0 {
		if strings.Contains(tmpl, closer) {
			return "", &domain.TemplateSyntaxError{Template: tmpl, Reason: fmt.Sprintf("%s appears before %s", closer, opener)}
		}
		return "", &domain.TemplateSyntaxError{Template: tmpl, Reason: fmt.Sprintf("no closing marker found for %q", name)}
	}
	closeIdx += open[1]

	if !e.exists(name) {
		if strings.Contains(tmpl, elseMarker) || strings.Contains(tmpl, elseEndMarker) {
			return tmpl, nil
		}
		return tmpl[:open[0]] + tmpl[closeIdx+len(closer):], nil
	}

	slot := slotPattern.FindStringSubmatch(tmpl[open[1]:closeIdx])
	if slot == nil {
		return "", &domain.TemplateSyntaxError{Template: tmpl, Reason: fmt.Sprintf("no placeholder inside %q block", name)}
	}
	key := slot[1]
	if !e.exists(key) {
		return "", &domain.TemplateMissingKeyError{Key: key}
	}
	value := fmt.Sprint(e.settings.Get(key))

	out := strings.ReplaceAll(tmpl, opener, "")
	out = strings.ReplaceAll(out, closer, "")
	return strings.ReplaceAll(out, "{"+key+"}", value), nil
}
