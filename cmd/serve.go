package cmd

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/renthing/internal/api"
	"github.com/renthing/internal/assistant"
	"github.com/renthing/internal/catalog"
	"github.com/renthing/internal/config"
	"github.com/renthing/internal/database"
	"github.com/renthing/internal/interactionlog"
	"github.com/renthing/internal/logging"
	"github.com/renthing/internal/preferences"
	"github.com/renthing/internal/routes"
	"github.com/renthing/internal/websearch"
)

// ServeCommand returns the command that runs the assistant API server
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the RenThing assistant API server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "port",
				Usage: "Override the configured server port",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return err
			}
			if port := c.Int("port"); port > 0 {
				cfg.Server.Port = port
			}
			if err := config.Validate(cfg); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			logging.Setup(cfg.Logging.Level, cfg.Logging.Pretty)

			db, err := database.NewDB(cfg.Database.URL)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer db.Close()

			var searchOpts []websearch.Option
			if cfg.Redis.Enabled {
				rdb := redis.NewClient(&redis.Options{
					Addr:     cfg.Redis.Address,
					Password: cfg.Redis.Password,
					DB:       cfg.Redis.DB,
				})
				defer rdb.Close()
				searchOpts = append(searchOpts, websearch.WithCache(websearch.NewCache(rdb, cfg.CacheTTL())))
				log.Info().Str("address", cfg.Redis.Address).Msg("Web search cache enabled")
			}

			webClient := websearch.NewClient(
				cfg.WebSearch.Endpoint,
				cfg.WebSearchTimeout(),
				cfg.WebSearch.RatePerSecond,
				cfg.WebSearch.MaxRetries,
				searchOpts...,
			)

			catalogStore := catalog.NewPostgresStore(db)
			logStore := interactionlog.NewPostgresStore(db)
			recorder := interactionlog.NewRecorder(logStore)
			defer recorder.Close()

			validator := routes.NewValidator(routes.DefaultRouteMap(), catalogStore)

			ren := assistant.New(
				catalogStore,
				webClient,
				validator,
				assistant.WithPreferenceStore(preferences.NewPostgresStore(db)),
				assistant.WithInteractionRecorder(recorder),
				assistant.WithWebSearchTimeout(cfg.WebSearchTimeout()),
			)

			handlers := api.NewAssistantHandlers(ren, logStore)
			server := api.NewServer(cfg, handlers)

			log.Info().Int("port", cfg.Server.Port).Msg("Starting RenThing assistant server")
			return server.Start()
		},
	}
}
