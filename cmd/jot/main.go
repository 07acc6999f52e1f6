package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hpungsan/jot/internal/config"
	"github.com/hpungsan/jot/internal/logging"
	"github.com/hpungsan/jot/internal/mcp"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"add": true, "list": true, "get": true, "delete": true, "edit": true,
	"export": true, "import": true, "serve": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode(args []string) bool {
	for _, arg := range args[1:] {
		// Skip global flags
		if arg == "--verbose" {
			continue
		}
		if cliCommands[arg] {
			return true
		}
		return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v"
	}
	return false // No command → MCP server
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion(args []string) bool {
	if len(args) < 2 {
		return false
	}
	arg := args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// hasVerboseFlag reports whether the global --verbose flag precedes the command.
func hasVerboseFlag(args []string) bool {
	for _, arg := range args[1:] {
		if arg == "--verbose" {
			return true
		}
		if cliCommands[arg] {
			return false
		}
	}
	return false
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
     _       _
    (_) ___ | |_
    | |/ _ \| __|
    | | (_) | |_
   _/ |\___/ \__|
  |__/

  Small ordered note list

  Usage: jot <command> [options]
         jot --help

  MCP server mode requires piped input.`)
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before opening storage
	if isHelpOrVersion(os.Args) {
		app := newCLIApp(nil, nil, "", zap.NewNop())
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("could not determine home directory: %w", err)
	}
	baseDir := filepath.Join(homeDir, ".jot")

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("could not determine working directory: %w", err)
	}
	cfg, err := config.LoadWithRepo(baseDir, cwd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(cfg.Verbose || hasVerboseFlag(os.Args))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if unknown := mcp.ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
		logger.Warn("unknown tools in disabled_tools", zap.Strings("tools", unknown))
	}

	s, closeStorage, err := openStore(context.Background(), cfg, baseDir, logger)
	if err != nil {
		return err
	}
	defer closeStorage()

	// CLI mode: known subcommand
	if isCLIMode(os.Args) {
		app := newCLIApp(s, cfg, baseDir, logger)
		return app.Run(os.Args)
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		return fmt.Errorf("unknown command %q\nRun 'jot --help' for usage", os.Args[1])
	}

	// MCP server mode (default)
	logger.Debug("starting MCP server", zap.String("version", Version))
	return mcp.Run(s, cfg, baseDir, Version)
}
