// Comando migrate aplica o revierte las migraciones embebidas.
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down 1
//	go run ./cmd/migrate version
package main

import (
	"os"
	"strconv"

	"github.com/jhoicas/retail-backoffice/internal/infrastructure/postgres"
	"github.com/jhoicas/retail-backoffice/pkg/config"
	"github.com/jhoicas/retail-backoffice/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	mg, err := postgres.NewMigrator(cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("abrir migraciones")
	}
	defer func() { _ = mg.Close() }()

	switch cmd {
	case "up":
		err = mg.Up()
	case "down":
		steps := 1
		if len(os.Args) > 2 {
			if steps, err = strconv.Atoi(os.Args[2]); err != nil {
				log.Fatal().Str("steps", os.Args[2]).Msg("pasos inválidos")
			}
		}
		err = mg.Down(steps)
	case "version":
	default:
		log.Fatal().Str("cmd", cmd).Msg("comando desconocido (up | down [n] | version)")
	}
	if err != nil {
		log.Fatal().Err(err).Str("cmd", cmd).Msg("migración fallida")
	}

	version, dirty, err := mg.Version()
	if err != nil {
		log.Fatal().Err(err).Msg("leer versión")
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("migraciones al día")
}
