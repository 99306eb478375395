// Package main is the entry point for the goalpilot CLI.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/goalpilot/goalpilot/internal/app"
	"github.com/goalpilot/goalpilot/internal/cli"
	"github.com/goalpilot/goalpilot/internal/domain"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	container, err := app.New(resolveDataDir(os.Getenv, cwd))
	if err != nil {
		if canRunWithoutContainer(os.Args[1:]) {
			return cli.NewRootCommand(nil, version).Execute()
		}
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() { _ = container.Close() }()

	return cli.NewRootCommand(container, version).Execute()
}

// resolveDataDir returns GOALPILOT_DATA_DIR when set, otherwise .goalpilot under cwd.
func resolveDataDir(getenv func(string) string, cwd string) string {
	if dir := getenv("GOALPILOT_DATA_DIR"); dir != "" {
		if filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(cwd, dir)
	}
	return filepath.Join(cwd, domain.DefaultDataDirName)
}

// canRunWithoutContainer reports whether args only ask for help or the version,
// which still works when the configuration is broken.
func canRunWithoutContainer(args []string) bool {
	if len(args) > 0 && args[0] == "help" {
		return true
	}
	for _, arg := range args {
		if arg == "--version" || arg == "-v" || arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}
