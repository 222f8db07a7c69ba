package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/piwi3910/fencecalc/internal/logger"
	"github.com/piwi3910/fencecalc/internal/project"
	"go.uber.org/zap"
)

func main() {
	var (
		configPath string
		logLevel   string
	)

	flag.StringVar(&configPath, "config", project.DefaultConfigPath(), "Path to the config file")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	logCfg := logger.DefaultConfig()
	logCfg.Level = logLevel
	log, err := logger.New(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync(log)

	cfg, err := project.LoadAppConfig(configPath)
	if err != nil {
		log.Fatal("Failed to load configuration", zap.String("path", configPath), zap.Error(err))
	}

	a := &app{
		log:        log,
		configPath: configPath,
		config:     cfg,
		in:         os.Stdin,
		out:        os.Stdout,
	}

	log.Debug("fencecalc started", zap.String("command", command), zap.String("config", configPath))

	switch command {
	case "estimate":
		err = a.estimate(args[1:])
	case "jobs":
		err = a.listJobs(args[1:])
	case "config":
		err = a.showConfig(args[1:])
	case "backup":
		err = a.backup(args[1:])
	case "restore":
		err = a.restore(args[1:])
	case "help":
		printUsage()
		return
	default:
		printUsage()
		log.Fatal("Unknown command", zap.String("command", command))
	}

	if err != nil {
		log.Fatal("Command failed", zap.String("command", command), zap.Error(err))
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: fencecalc [flags] <command> [command flags]

Commands:
  estimate   Compute a material takeoff and cost for a fence
  jobs       List saved jobs (-show, -rm, -dup, -rename act on one job)
  config     Show the effective configuration (-init writes defaults)
  backup     Write config and jobs to a backup file
  restore    Restore config and jobs from a backup file
  help       Show this help

Flags:`)
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr, `
Examples:
  fencecalc estimate -runs 60,40 -height 4 -type residential -ends 2 -corners 1
  fencecalc estimate -import site.dxf -dxf-scale 12 -pdf quote.pdf -save -name Backyard
  fencecalc config -init`)
}
