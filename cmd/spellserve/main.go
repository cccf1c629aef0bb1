/*
Package main implements the spell-checking server and CLI application.

SpellServe provides multi-language spell checking backed by hunspell-style
dictionaries: root word lists expanded through prefix/suffix rules and
compound grammars, with edit-distance suggestion generation and an LRU
result cache. It can operate as a MessagePack IPC server for integration
with editors, or as a CLI application for testing and debugging.

# Usage

Start the server with default settings:

	spellserve

Use a custom dictionary directory and enable debug mode:

	spellserve -data /path/to/dicts -d

Run in CLI mode for interactive checking:

	spellserve -c -lang en-US -limit 5

The data directory holds one subdirectory per language containing
<language>.aff and <language>.dic files, e.g. data/en-US/en-US.dic.

# Configuration

Runtime configuration is managed through a TOML file:

	[spell]
	default_language = "en-US"
	preload_languages = ["fr-FR"]
	cache_size = 1000
	max_retries = 3
	retry_delay_ms = 1000
	backoff = "fixed"
	dictionary_path = "data/{language}/{language}"
	fallback_on_error = true
	max_suggestions = 10

	[server]
	max_word_length = 60
	max_limit = 24

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Check requests:

	{"id": "req1", "action": "check", "w": "helo"}

Receive correctness plus timing information:

	{"id": "req1", "ok": false, "lang": "en-US", "t": 212}

See the server package for the full message catalogue.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/spellserve/internal/cli"
	"github.com/bastiangx/spellserve/internal/utils"
	"github.com/bastiangx/spellserve/pkg/config"
	"github.com/bastiangx/spellserve/pkg/dictionary"
	"github.com/bastiangx/spellserve/pkg/server"
	"github.com/bastiangx/spellserve/pkg/spell"
)

const (
	Version = "0.3.0"
	AppName = "spellserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, dictionary source, checker and server/CLI together.
// It does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "spellserve.toml", "Path to the TOML config file")
	dataDir := flag.String("data", ".", "Directory containing dictionary files")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	lang := flag.String("lang", "", "Language to check against in CLI mode (default from config)")
	limit := flag.Int("limit", defaults.Spell.MaxSuggestions, "Number of suggestions to show in CLI mode")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, err := config.InitConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", *configPath)

	source := dictionary.NewDirSource(*dataDir)
	log.Debugf("Dictionary data directory: (%s)", utils.GetAbsolutePath(*dataDir))
	checker, err := spell.New(appConfig, source)
	if err != nil {
		log.Fatalf("Failed to create checker: %v", err)
	}

	ctx := context.Background()
	if err := checker.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize checker: %v", err)
	}
	log.Debug("Checker init done")

	if *cliMode {
		log.SetReportTimestamp(false)
		handler := cli.NewInputHandler(checker, *lang, *limit, appConfig.Server.MaxWordLength)
		if err := handler.Start(ctx); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	showStartupInfo(checker)

	srv := server.NewServer(checker, appConfig)
	if err := srv.Start(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ SpellServe ] Multi-language spell checking over IPC")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(checker *spell.Checker) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("languages: %v", checker.AvailableLanguages())
	log.Infof("status: %s", checker.State())

	log.SetLevel(currentLevel)
}
