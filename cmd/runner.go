package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/webplayer/internal/player"
	"github.com/desertthunder/webplayer/internal/services"
	"github.com/desertthunder/webplayer/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// PlaybackFactory builds the Web API client for a session.
type PlaybackFactory func(source oauth2.TokenSource) services.PlaybackAPI

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	configPath  string
	proxy       *services.ProxyService
	httpClient  *http.Client
	logger      *log.Logger
	output      io.Writer
	playback    PlaybackFactory
	openBrowser func(string) error
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config      *shared.Config
	ConfigPath  string
	Proxy       *services.ProxyService
	HTTPClient  *http.Client
	Logger      *log.Logger
	Output      io.Writer
	Playback    PlaybackFactory
	OpenBrowser func(string) error
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Proxy == nil {
		opts.Proxy = services.NewProxyService(opts.Config.Player.ProxyURL, opts.HTTPClient)
	}
	if opts.Playback == nil {
		transport := opts.HTTPClient.Transport
		opts.Playback = func(source oauth2.TokenSource) services.PlaybackAPI {
			return services.NewPlaybackService(source, services.PlaybackOpts{Transport: transport})
		}
	}
	if opts.OpenBrowser == nil {
		opts.OpenBrowser = shared.OpenBrowser
	}

	return &Runner{
		config:      opts.Config,
		configPath:  opts.ConfigPath,
		proxy:       opts.Proxy,
		httpClient:  opts.HTTPClient,
		logger:      opts.Logger,
		output:      opts.Output,
		playback:    opts.Playback,
		openBrowser: opts.OpenBrowser,
	}
}

// SetLogger replaces the runner's logger, e.g. with a file logger while the TUI owns the terminal.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, loginCommand, playerCommand, tuiCommand, apiCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// session builds the player session from --url, or from --token/--refresh-token.
//
// Without a token the proxy login page is opened and [shared.ErrNotAuthenticated] returned.
func (r *Runner) session(cmd *cli.Command) (*player.Session, error) {
	var (
		session *player.Session
		err     error
	)

	if raw := cmd.String("url"); raw != "" {
		session, err = player.SessionFromURL(raw)
	} else if token := cmd.String("token"); token != "" {
		session = player.NewSession(token, cmd.String("refresh-token"))
	} else {
		err = shared.ErrNotAuthenticated
	}

	if errors.Is(err, shared.ErrNotAuthenticated) {
		login := r.proxy.LoginURL()
		r.logger.Warn("no access token, opening login", "url", login)
		if openErr := r.openBrowser(login); openErr != nil {
			r.logger.Warn("failed to open browser", "error", openErr)
		}
	}
	if err != nil {
		return nil, err
	}

	return session, nil
}

// controller wires a session to the Web API and the proxy.
func (r *Runner) controller(session *player.Session, display player.Display) *player.Controller {
	if display == nil {
		display = player.LogDisplay{Logger: r.logger}
	}

	return player.NewController(session, r.playback(session), player.Options{
		Refresher:  r.proxy,
		Display:    display,
		Logger:     r.logger,
		LikedLimit: r.config.Player.LikedLimit,
	})
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
