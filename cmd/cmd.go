// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// sessionFlags carry the session token into player commands. Subcommands inherit them.
func sessionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "token",
			Aliases: []string{"t"},
			Usage:   "Access token issued by the proxy",
			Sources: cli.EnvVars("ACCESS_TOKEN"),
		},
		&cli.StringFlag{
			Name:    "refresh-token",
			Usage:   "Refresh token issued by the proxy",
			Sources: cli.EnvVars("REFRESH_TOKEN"),
		},
		&cli.StringFlag{
			Name:  "url",
			Usage: "Redirect URL from the proxy callback, e.g. http://localhost:8888/?access_token=...",
		},
		&cli.StringFlag{
			Name:    "device",
			Aliases: []string{"d"},
			Usage:   "Spotify Connect device name (defaults to the active device)",
			Sources: cli.EnvVars("DEVICE_NAME"),
		},
	}
}

func outputFlags(pretty bool) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
			Value: pretty,
		},
	}
}

// serveCommand runs the auth proxy
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the OAuth proxy and serve the web player",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Interface to listen on (overrides config)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// loginCommand opens the proxy's login page
func loginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "login",
		Usage:  "Open the proxy login page in a browser",
		Action: r.Login,
	}
}

// playerCommand handles playback operations
func playerCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "player",
		Aliases: []string{"p"},
		Usage:   "Control Spotify playback",
		Flags:   sessionFlags(),
		Commands: []*cli.Command{
			{
				Name:  "library",
				Usage: "Show profile, playlists and Liked Songs",
				Flags: append(outputFlags(false), &cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Usage:   "Output format: text, markdown or csv",
					Value:   "text",
				}),
				Action: r.PlayerLibrary,
			},
			{
				Name:  "play",
				Usage: "Play a playlist by context URI",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "uri",
					},
				},
				Action: r.PlayerPlay,
			},
			{
				Name:   "liked",
				Usage:  "Play Liked Songs",
				Action: r.PlayerLiked,
			},
			{
				Name:   "pause",
				Usage:  "Pause playback",
				Action: r.PlayerPause,
			},
			{
				Name:   "resume",
				Usage:  "Resume playback",
				Action: r.PlayerResume,
			},
			{
				Name:   "next",
				Usage:  "Skip to the next track",
				Action: r.PlayerNext,
			},
			{
				Name:    "prev",
				Aliases: []string{"previous"},
				Usage:   "Go back to the previous track",
				Action:  r.PlayerPrevious,
			},
			{
				Name:   "shuffle",
				Usage:  "Toggle shuffle",
				Action: r.PlayerShuffle,
			},
			{
				Name:   "state",
				Usage:  "Show the current playback state",
				Flags:  outputFlags(true),
				Action: r.PlayerState,
			},
			{
				Name:   "devices",
				Usage:  "List Spotify Connect devices",
				Flags:  outputFlags(false),
				Action: r.PlayerDevices,
			},
			{
				Name:   "refresh",
				Usage:  "Exchange the refresh token for a new access token via the proxy",
				Action: r.PlayerRefresh,
			},
		},
	}
}

// tuiCommand launches the terminal player
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Launch the interactive terminal player",
		Flags:  sessionFlags(),
		Action: r.TUI,
	}
}

// apiCommand makes direct calls to the proxy
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the OAuth proxy",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the proxy, prints the response",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.APIGet,
			},
		},
	}
}

// configCommand manages the configuration file
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage configuration",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write an example config.toml",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.ConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the resolved configuration with secrets masked",
				Flags:  outputFlags(true),
				Action: r.ConfigShow,
			},
		},
	}
}
