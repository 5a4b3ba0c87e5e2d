package builtin

import (
	"context"
	"net/http"
	"time"

	"github.com/aretw0/baxter/pkg/action"
	"github.com/aretw0/baxter/pkg/adapters/process"
	"github.com/aretw0/baxter/pkg/domain"
)

// Action keys of the built-in actions.
const (
	CurrentTime = "get_current_time"
	GreetUser   = "greet_user"
	PlaySong    = "play_song"
	ClearChat   = "clear_chat"
	TellJoke    = "tell_joke"
	OpenWebsite = "open_website"
	Repeat      = domain.RepeatAction
)

// URLOpener opens a URL outside the assistant, usually in a browser.
type URLOpener interface {
	OpenURL(ctx context.Context, url string) error
}

// JokeSource produces one joke per call.
type JokeSource interface {
	Joke(ctx context.Context) (string, error)
}

type options struct {
	clock  func() time.Time
	opener URLOpener
	jokes  JokeSource
	client *http.Client
}

// Option configures the built-in actions.
type Option func(*options)

// WithClock replaces time.Now for get_current_time.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithOpener sets how open_website opens URLs.
func WithOpener(opener URLOpener) Option {
	return func(o *options) {
		o.opener = opener
	}
}

// WithJokeSource replaces the JokeAPI client used by tell_joke.
func WithJokeSource(src JokeSource) Option {
	return func(o *options) {
		o.jokes = src
	}
}

// WithHTTPClient sets the client of the default JokeAPI source.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.client = client
	}
}

// Actions returns the built-in handlers keyed by action key.
func Actions(opts ...Option) map[string]action.Handler {
	o := &options{
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.opener == nil {
		o.opener = process.NewRunner(process.WithCommands(process.DefaultCommands("")))
	}
	if o.jokes == nil {
		o.jokes = NewJokeAPI(DefaultJokeURL, o.client)
	}

	return map[string]action.Handler{
		CurrentTime: currentTime(o.clock),
		GreetUser:   action.HandlerFunc(greet),
		PlaySong:    action.HandlerFunc(playSong),
		ClearChat:   action.HandlerFunc(clearChat),
		TellJoke:    tellJoke(o.jokes),
		OpenWebsite: openWebsite(o.opener),
		Repeat:      action.NewRepeatAction(),
	}
}
