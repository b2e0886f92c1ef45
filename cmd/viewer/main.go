package main

import (
	"flag"
	"os"
	"runtime"

	"flycam/internal/logger"
	"flycam/pkg/config"
	"flycam/pkg/engine"
)

func init() {
	// GLFW requires the program to be running on the main thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	writeDefaults := flag.Bool("write-config", false, "Write the default configuration to -config and exit")
	logLevel := flag.String("log-level", "", "Override the configured log level (debug, info, warn, error)")
	flag.Parse()

	if *writeDefaults {
		log := logger.NewLogger("info")
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			log.Fatalf("Failed to write configuration: %v", err)
		}
		log.Infof("Wrote default configuration to %s", *configPath)
		return
	}

	cfg, found, cfgErr := config.LoadConfigIfExists(*configPath)

	log, err := newLogger(cfg.Logging)
	if err != nil {
		log = logger.NewLogger(cfg.Logging.Level)
		log.Warnf("Logging to console only: %v", err)
	}
	defer log.Close()
	if *logLevel != "" {
		log.SetLevel(*logLevel)
	}

	switch {
	case cfgErr != nil:
		log.Fatalf("Failed to load configuration: %v", cfgErr)
	case !found:
		log.Warnf("Config file %s not found, using defaults", *configPath)
	default:
		log.Infof("Loaded configuration from %s", *configPath)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	game, err := engine.NewEngine(cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize engine: %v", err)
	}

	log.Info("Engine initialized, starting render loop...")
	if err := game.Run(); err != nil {
		log.Errorf("Render loop stopped: %v", err)
		log.Close()
		os.Exit(1)
	}
}

func newLogger(cfg config.LoggingConfig) (*logger.Logger, error) {
	var (
		log *logger.Logger
		err error
	)
	switch {
	case cfg.File == "":
		log = logger.NewLogger(cfg.Level)
	case cfg.Console:
		log, err = logger.NewMultiLogger(cfg.Level, cfg.File)
	default:
		log, err = logger.NewFileLogger(cfg.Level, cfg.File)
	}
	if err != nil {
		return nil, err
	}

	if !cfg.Colors {
		log.EnableColors(false)
	}
	return log, nil
}
