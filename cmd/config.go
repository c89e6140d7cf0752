package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/webplayer/internal/shared"
	"github.com/urfave/cli/v3"
)

// ConfigInit writes the example configuration to --config.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("config created", "path", path)
	return r.writePlainln("Wrote %s. Fill in client_id and client_secret, then run `webplayer serve`.", path)
}

// ConfigShow prints the resolved configuration as TOML with the client secret masked.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	r.logger.Debug("showing config", "path", r.configPath)

	c := *r.config
	c.Credentials.Spotify.ClientSecret = mask(c.Credentials.Spotify.ClientSecret)

	if cmd.Bool("json") {
		return r.writeJSON(c, cmd.Bool("pretty"))
	}

	if err := toml.NewEncoder(r.output).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

func mask(secret string) string {
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:4] + strings.Repeat("*", len(secret)-4)
}
