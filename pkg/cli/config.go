package cli

import (
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/askholmes/holmes/pkg/adapter"
	"github.com/askholmes/holmes/pkg/interfaces"
	"github.com/askholmes/holmes/pkg/service"
	"github.com/askholmes/holmes/pkg/session"
	"github.com/askholmes/holmes/pkg/utils/logging"
)

// config holds configuration values
type config struct {
	baseURL     string
	logLevel    string
	sessionPath string
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "base-url",
			Aliases:     []string{"u"},
			Usage:       "Base URL of the Ask Holmes service",
			Value:       "http://localhost:5000",
			Sources:     cli.EnvVars("HOLMES_BASE_URL"),
			Destination: &cfg.baseURL,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("HOLMES_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
		&cli.StringFlag{
			Name:        "session-file",
			Usage:       "Path to the session file",
			Sources:     cli.EnvVars("HOLMES_SESSION_FILE"),
			Destination: &cfg.sessionPath,
		},
	}
}

// logger creates a logger honoring the configured level
func (cfg *config) logger(w io.Writer) *slog.Logger {
	return logging.New(cfg.logLevel, w)
}

// newTransport creates the HTTP transport client
func (cfg *config) newTransport() *adapter.Client {
	return adapter.New(cfg.baseURL)
}

// newAuth creates the Auth facade
func (cfg *config) newAuth() interfaces.Auth {
	return service.NewAuth(cfg.newTransport())
}

// newQuestions creates the Questions facade
func (cfg *config) newQuestions() interfaces.Questions {
	return service.NewQuestions(cfg.newTransport())
}

// newRAG creates the RAG facade
func (cfg *config) newRAG() interfaces.RAG {
	return service.NewRAG(cfg.newTransport())
}

// sessionStore creates the session store at the configured or default path
func (cfg *config) sessionStore() (*session.Store, error) {
	path := cfg.sessionPath
	if path == "" {
		var err error
		path, err = session.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return session.NewStore(path), nil
}

// currentSession loads the persisted identity, failing when signed out
func (cfg *config) currentSession() (*session.Session, error) {
	store, err := cfg.sessionStore()
	if err != nil {
		return nil, err
	}
	return store.Current()
}
