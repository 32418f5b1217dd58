package cmd

import (
	"os"

	"bitbucket.org/cover42/agsctl/internal/arcgis"
	"bitbucket.org/cover42/agsctl/internal/config"
	"bitbucket.org/cover42/agsctl/internal/lifecycle"
	"bitbucket.org/cover42/agsctl/internal/logger"
	"bitbucket.org/cover42/agsctl/internal/prompt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// session is an authenticated connection plus the lifecycle manager bound
// to it. One is created per command run.
type session struct {
	cfg     *config.Config
	log     *zap.Logger
	client  *arcgis.Client
	manager *lifecycle.Manager
}

// loadConfig resolves and validates the configuration for cmd
func loadConfig(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, nil, fatal(cmd, "Failed to load configuration: "+err.Error(), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fatal(cmd, "Configuration error: "+err.Error(), err)
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		return nil, nil, fatal(cmd, "", err)
	}
	return cfg, log, nil
}

// newSession loads configuration, asks for a missing password on a
// terminal and exchanges the credentials for a token. A failed exchange
// ends the run.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	if cfg.Server.User != "" && cfg.Server.Password == "" && prompt.IsTerminal(os.Stdin) {
		password, err := prompt.Password("Password for "+cfg.Server.User, cmd.ErrOrStderr())
		if err != nil {
			return nil, fatal(cmd, "", err)
		}
		cfg.Server.Password = password
	}

	client := arcgis.NewClient(cfg.Connection(),
		arcgis.WithTimeout(cfg.Server.Timeout),
		arcgis.WithLogger(log),
	)

	if _, err := client.GenerateToken(cmd.Context()); err != nil {
		return nil, fatal(cmd, "Could not connect to server.", err)
	}
	log.Debug("token acquired", zap.String("server", cfg.Server.Host))

	manager := lifecycle.NewManager(client,
		lifecycle.WithReporter(newConsoleReporter(cmd.OutOrStdout())),
		lifecycle.WithConfirmer(prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())),
		lifecycle.WithLogger(log),
	)

	return &session{cfg: cfg, log: log, client: client, manager: manager}, nil
}
