// tdstool is a CLI utility for inspecting Autodesk 3D Studio (.3ds) files.
package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-3ds/internal/config"
	"github.com/Faultbox/midgard-3ds/internal/logger"
	"github.com/Faultbox/midgard-3ds/pkg/convert"
)

type command func(w io.Writer, args []string, cfg *config.Config) error

var commands = map[string]command{
	"info":      cmdInfo,
	"tree":      cmdTree,
	"materials": cmdMaterials,
	"mat":       cmdMaterials,
	"anim":      cmdAnim,
	"textures":  cmdTextures,
	"dump":      cmdDump,
	"config":    cmdConfig,
}

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	name, args := args[0], args[1:]
	if name == "help" || name == "-h" || name == "--help" {
		printUsage()
		return
	}
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", name)
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := cmd(os.Stdout, args, cfg); err != nil {
		logger.Error("command failed", zap.String("command", name), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tdstool - 3D Studio (.3ds) scene utility

Usage:
  tdstool [flags] <command> [options]

Commands:
  info <file.3ds>...         Show scene statistics for one or more files
  tree <file.3ds>            Print the node hierarchy
  materials <file.3ds>       List materials and their textures
  anim <file.3ds>            List animation channels
  textures [-decode] <file.3ds>
                             Check the texture files next to the model
  dump <file.3ds>            Write a YAML summary of the scene
  config [path]              Write the default configuration

Flags:
  -config <path>             Config file (default: ./config.yaml, then user config dir)
  -debug                     Enable debug logging
  -log-file <path>           Also log to a rotating file
  -encoding <name>           Name encoding: raw, windows-1252, cp437, latin1
  -no-axis-correction        Keep the Z-up source basis

Examples:
  tdstool info models/*.3ds
  tdstool -encoding cp437 tree castle.3ds
  tdstool -debug dump ship.3ds > ship.yaml`)
}

// importOptions builds importer options from the configuration.
func importOptions(cfg *config.Config) (convert.Options, error) {
	opts, err := cfg.Import.Options()
	if err != nil {
		return opts, err
	}
	opts.Logger = logger.Named("tds")
	return opts, nil
}
