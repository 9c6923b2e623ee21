// migrate aplica las migraciones SQL embebidas.
//
// Uso: go run ./cmd/migrate -cmd up|down|status|version [-version YYYYMMDDHHMMSS]
package main

import (
	"context"
	"flag"
	"time"

	"github.com/jhoicas/suplegear-api/internal/infrastructure/postgres"
	"github.com/jhoicas/suplegear-api/internal/infrastructure/postgres/migrations"
	"github.com/jhoicas/suplegear-api/pkg/config"
	"github.com/jhoicas/suplegear-api/pkg/logger"
)

func main() {
	command := flag.String("cmd", "up", "comando goose: up, down, status, version")
	version := flag.String("version", "", "versión destino; si se indica se ignora -cmd")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "migrate"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	db := postgres.OpenSQL(pool)
	defer db.Close()

	if *version != "" {
		err = migrations.MigrateToVersion(ctx, db, *version)
	} else {
		err = migrations.Run(ctx, db, *command)
	}
	if err != nil {
		log.Fatal().Err(err).Str("cmd", *command).Str("version", *version).Msg("migración fallida")
	}
	log.Info().Str("cmd", *command).Str("version", *version).Msg("migración completada")
}
