package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/kritsw/attendant/agent/assistant"
	contractx "github.com/kritsw/attendant/agent/contract"
	"github.com/kritsw/attendant/agent/gateway"
	recordx "github.com/kritsw/attendant/agent/record"
	referencex "github.com/kritsw/attendant/agent/reference"
	toolx "github.com/kritsw/attendant/agent/tool"
	configx "github.com/kritsw/attendant/pkg/config"
	logx "github.com/kritsw/attendant/pkg/logger"
	openrouterx "github.com/kritsw/attendant/pkg/openrouter"
	webhookx "github.com/kritsw/attendant/pkg/webhook"
)

type AppConfig struct {
	Mode    string `envconfig:"MODE" default:"grocery"`
	Serve   string `envconfig:"SERVE" default:"mcp"` // mcp | console
	Backend string `envconfig:"BACKEND" default:"file"`
	DataDir string `envconfig:"DATA_DIR" split_words:"true" default:"data"`
	Webhook bool   `envconfig:"WEBHOOK" default:"false"`
}

func main() {
	logCfg := configx.MustNew[logx.Config]("LOG")
	logx.Init(*logCfg)

	appCfg := configx.MustNew[AppConfig]("")
	refCfg := configx.MustNew[referencex.Config]("REFERENCE")

	deps := buildDeps(*appCfg, *refCfg)

	sessionID := uuid.NewString()
	a, err := assistant.New(appCfg.Mode, sessionID, deps)
	if err != nil {
		log.Fatal().Err(err).Str("mode", appCfg.Mode).Msg("build assistant")
	}
	reg := toolx.NewRegistry(sessionID, deps.Sink, a.Tools())

	log.Info().
		Str("mode", appCfg.Mode).
		Str("serve", appCfg.Serve).
		Str("session_id", sessionID).
		Msg("attendant starting")

	switch appCfg.Serve {
	case "console":
		orCfg := configx.MustNew[openrouterx.Config]("OPENROUTER")
		client, err := openrouterx.NewClient(*orCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("build model client")
		}
		runner := gateway.NewRunner(client, orCfg.Model, a, reg)
		if err := runner.Run(context.Background(), os.Stdin, os.Stdout); err != nil {
			log.Fatal().Err(err).Msg("console runner stopped")
		}
	default:
		if err := gateway.ServeStdio(gateway.NewMCPServer(a, reg)); err != nil {
			log.Fatal().Err(err).Msg("mcp server stopped")
		}
	}
}

func buildDeps(appCfg AppConfig, refCfg referencex.Config) assistant.Deps {
	sinks := contractx.Sinks{contractx.LogSink{}}
	if appCfg.Webhook {
		whCfg := configx.MustNew[webhookx.Config]("WEBHOOK")
		publisher, err := webhookx.NewPublisher(*whCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("build webhook publisher")
		}
		sinks = append(sinks, publisher)
	}

	deps := assistant.Deps{
		Ref:  referencex.Load(refCfg),
		Sink: sinks,
		// Fraud cases stay file-backed in every configuration: update-by-key
		// over the seeded case file.
		Cases: recordx.NewCaseStore(filepath.Join(appCfg.DataDir, "fraud_cases.json")),
	}

	if appCfg.Backend == "postgres" {
		pgCfg := configx.MustNew[recordx.PostgresConfig]("POSTGRES")
		db, err := recordx.NewPostgresDB(*pgCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("open postgres")
		}
		if err := recordx.EnsureSchema(context.Background(), db); err != nil {
			log.Fatal().Err(err).Msg("ensure postgres schema")
		}
		deps.Orders = recordx.NewPgLog[recordx.Order](db, "order")
		deps.CoffeeOrders = recordx.NewPgLog[recordx.CoffeeOrder](db, "coffee_order")
		deps.CheckIns = recordx.NewPgLog[recordx.CheckIn](db, "checkin")
		deps.Leads = recordx.NewPgLog[recordx.Lead](db, "lead")
		return deps
	}

	deps.Orders = recordx.NewFileLog[recordx.Order](filepath.Join(appCfg.DataDir, "orders.json"))
	deps.CoffeeOrders = recordx.NewFileLog[recordx.CoffeeOrder](filepath.Join(appCfg.DataDir, "coffee_orders.json"))
	deps.CheckIns = recordx.NewFileLog[recordx.CheckIn](filepath.Join(appCfg.DataDir, "checkins.json"))
	deps.Leads = recordx.NewFileLog[recordx.Lead](filepath.Join(appCfg.DataDir, "leads.json"))
	return deps
}
