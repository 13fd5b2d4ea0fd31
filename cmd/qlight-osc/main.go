// qlight-osc drives a qlight USB indicator light from OSC messages
// received over UDP.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/helloitszak/qlight-ctrl/internal/config"
	"github.com/helloitszak/qlight-ctrl/internal/hid"
	"github.com/helloitszak/qlight-ctrl/internal/qlight"
	"github.com/helloitszak/qlight-ctrl/internal/server"
)

const configEnvVar = "QLIGHT_OSC_CONFIG"

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", defaultConfigPath(), "Path to configuration file")
	flag.StringVar(&configPath, "c", defaultConfigPath(), "Path to configuration file (shorthand)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogging(cfg.Log.Level, cfg.Log.JSON, cfg.Log.Colors)

	log.Info().Str("config", configPath).Msg("Starting qlight-osc")

	mgr, err := hid.NewManager()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize HID support")
	}

	name, binding, err := cfg.FirstBinding()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to resolve device binding")
	}
	log.Info().Str("binding", name).Str("path", binding.Path).Msg("Using device binding")

	session := qlight.NewSession(mgr, qlight.Binding{Name: name, Path: binding.Path})
	defer session.Close()

	srv := server.New(log.Logger, session, cfg.OnWriteError == config.WriteErrorExit)
	if err := srv.ListenAndServe(cfg.Listen); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

func defaultConfigPath() string {
	if p := os.Getenv(configEnvVar); p != "" {
		return p
	}
	return "config.yaml"
}

func setupLogging(level string, useJSON bool, colors bool) {
	zerolog.TimeFieldFormat = time.RFC3339

	if useJSON {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "2006-01-02T15:04:05.000Z07:00",
			NoColor:    !colors,
		})
	}

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
