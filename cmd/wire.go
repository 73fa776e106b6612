package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/foodcook-cli/internal/adapters/api"
	"github.com/bnema/foodcook-cli/internal/adapters/metrics"
	"github.com/bnema/foodcook-cli/internal/adapters/notify"
	tomlrepo "github.com/bnema/foodcook-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/foodcook-cli/internal/adapters/secrets/chain"
	filestore "github.com/bnema/foodcook-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/foodcook-cli/internal/adapters/secrets/pass"
	"github.com/bnema/foodcook-cli/internal/application"
	"github.com/bnema/foodcook-cli/internal/config"
	"github.com/bnema/foodcook-cli/internal/ports"
	"github.com/bnema/foodcook-cli/internal/version"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const loginHint = "Session expired. Run `fc auth login` to sign in again."

type app struct {
	cfg         config.Config
	log         *logrus.Logger
	notifier    *notify.Terminal
	metrics     *metrics.Recorder
	client      *api.Client
	storage     *application.SessionStorage
	session     *application.SessionService
	catalog     *application.Catalog
	showMetrics bool
	now         func() time.Time
}

func (a *app) wire(cmd *cobra.Command, opts rootOptions) error {
	v := viper.New()
	if opts.logLevel != "" {
		v.Set(config.KeyLogLevel, opts.logLevel)
	}

	cfg, err := config.Load(v, opts.configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(cfg.LogLevel())

	secrets, err := newSecretStore(cfg.Session, log)
	if err != nil {
		return fmt.Errorf("wire secret store: %w", err)
	}

	notifier := notify.NewTerminal(cmd.ErrOrStderr())
	notifier.SetQuiet(opts.quiet)
	recorder := metrics.NewRecorder()
	storage := application.NewSessionStorage(secrets, tomlrepo.NewProfileRepository(cfg.Session.ProfilePath), log)

	client, err := api.NewClient(api.Config{
		BaseURL:        cfg.API.BaseURL,
		RequestTimeout: cfg.API.Timeout,
		UserAgent:      "fc/" + version.Version,
		RateLimit:      cfg.API.RateLimit,
		RateBurst:      cfg.API.RateBurst,
	}, storage,
		api.WithNotifier(notifier),
		api.WithObserver(recorder),
		api.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("wire api client: %w", err)
	}

	session := application.NewSessionService(client, storage, notifier, log)
	client.OnSessionExpired(session.Expire)
	stderr := cmd.ErrOrStderr()
	client.OnSessionExpired(func(context.Context) {
		_, _ = fmt.Fprintln(stderr, loginHint)
	})
	session.Restore(cmd.Context())

	*a = app{
		cfg:      cfg,
		log:      log,
		notifier: notifier,
		metrics:  recorder,
		client:   client,
		storage:  storage,
		session:  session,
		catalog: application.NewCatalog(client, notifier, log, application.PageOptions{
			PageSize:    cfg.Pagination.PageSize,
			SearchLimit: cfg.Pagination.SearchLimit,
		}),
		showMetrics: opts.showMetrics,
		now:         time.Now,
	}
	return nil
}

func (a *app) finish(cmd *cobra.Command) error {
	if !a.showMetrics || a.metrics == nil {
		return nil
	}
	if err := a.metrics.WriteText(cmd.ErrOrStderr()); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

func newSecretStore(cfg config.SessionConfig, log logrus.FieldLogger) (ports.SecretStore, error) {
	switch cfg.SecretBackend {
	case config.BackendFile:
		return filestore.NewStore(cfg.SecretsDir), nil
	case config.BackendPass:
		return passstore.NewStore(), nil
	case config.BackendChain:
		return chainstore.NewPassFirstWithFileFallback(cfg.SecretsDir, log)
	default:
		return nil, fmt.Errorf("unknown secret backend %q", cfg.SecretBackend)
	}
}
