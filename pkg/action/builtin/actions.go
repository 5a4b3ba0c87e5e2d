package builtin

import (
	"context"
	"errors"
	"time"

	"github.com/aretw0/baxter/pkg/action"
	"github.com/aretw0/baxter/pkg/template"
)

// NoSongResponse answers play_song when no song name was found.
const NoSongResponse = "Tut mir leid, ich konnte keinen Songnamen erkennen"

const (
	defaultPlatform = "YouTube"
	unknownArtist   = "Unknown"
)

var errNoUtils = errors.New("action utils not available")

func currentTime(clock func() time.Time) action.Handler {
	return action.HandlerFunc(func(ctx context.Context, call action.Call) (string, error) {
		now := clock()
		return template.Format(call.MainTemplate, map[string]any{
			"hour":    now.Hour(),
			"minutes": now.Minute(),
		})
	})
}

func greet(ctx context.Context, call action.Call) (string, error) {
	if call.Utils == nil {
		return "", errNoUtils
	}
	return call.Utils.HandleIfStatements(call.MainTemplate)
}

func clearChat(ctx context.Context, call action.Call) (string, error) {
	if call.Trigger.UI == nil {
		return "", action.ErrNoWindow
	}
	if err := call.Trigger.UI.ClearChat(ctx); err != nil {
		return "", err
	}
	return call.MainTemplate, nil
}

func tellJoke(src JokeSource) action.Handler {
	return action.HandlerFunc(func(ctx context.Context, call action.Call) (string, error) {
		joke, err := src.Joke(ctx)
		if err != nil {
			return "", err
		}
		return template.Format(call.MainTemplate, map[string]any{"joke": joke})
	})
}

func openWebsite(opener URLOpener) action.Handler {
	return action.HandlerFunc(func(ctx context.Context, call action.Call) (string, error) {
		if call.Utils == nil {
			return "", errNoUtils
		}
		spans, err := call.Utils.Spans(ctx, call.Input)
		if err != nil {
			return "", err
		}
		site, ok := spans.Get("part1")
		if !ok || site == "" {
			return call.ErrorTemplate, nil
		}
		if err := opener.OpenURL(ctx, site); err != nil {
			return "", err
		}
		return template.Format(call.MainTemplate, map[string]any{"website": site})
	})
}

func playSong(ctx context.Context, call action.Call) (string, error) {
	if call.Utils == nil {
		return "", errNoUtils
	}
	spans, err := call.Utils.Spans(ctx, call.Input)
	if err != nil {
		return "", err
	}
	song, _ := spans.Get("part1")
	artist, _ := spans.Get("part2")
	platform, _ := spans.Get("part3")

	if song == "" {
		return NoSongResponse, nil
	}
	switch {
	case artist != "" && platform != "":
	case artist != "":
		platform = defaultPlatform
	case platform != "":
		artist = unknownArtist
	default:
		return call.ErrorTemplate, nil
	}
	return template.Format(call.MainTemplate, map[string]any{
		"song_name":     song,
		"artist_name":   artist,
		"platform_name": platform,
	})
}
