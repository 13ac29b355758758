// x3dtool is a CLI utility for inspecting X3D scenes and packing their textures.
package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/x3dscene/internal/config"
	"github.com/Faultbox/x3dscene/internal/logger"
)

func main() {
	config.ParseFlags()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	fileCfg := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.Setup(logger.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Console: true,
		Color:   cfg.Output.Color,
		File:    fileCfg,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Sugar.Debugf("Config: %+v", cfg)

	a := newApp(cfg, os.Stdout, logger.Log)
	command, rest := args[0], args[1:]

	var run func([]string) error
	switch command {
	case "info":
		run = a.cmdInfo
	case "tree":
		run = a.cmdTree
	case "labels":
		run = a.cmdLabels
	case "lights":
		run = a.cmdLights
	case "watch":
		run = a.cmdWatch
	case "pack":
		run = a.cmdPack
	case "list", "ls":
		run = a.cmdList
	case "extract", "x":
		run = a.cmdExtract
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err := run(rest); err != nil {
		if errors.Is(err, errUsage) {
			printUsage()
		}
		logger.Debug("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		fail(err)
	}
}

func printUsage() {
	fmt.Println(`x3dtool - X3D scene inspector

Usage:
  x3dtool [flags] <command> [args]

Commands:
  info <file.x3d>               Show scene summary, environment and diagnostics
  tree <file.x3d>               Print the node hierarchy
  labels <file.x3d> [pattern]   List DEF/id labels (optional glob pattern)
  lights <file.x3d>             Show lights after shadow framing
  watch <file.x3d>              Re-decode the file whenever it changes
  pack <out.grf> <dir>          Pack a texture directory into a GRF archive
  list [-n N] <file.grf> [pattern]
                                List files in a GRF archive
  extract <file.grf> <pattern> [output_dir]
                                Extract matching files from a GRF archive

Flags:
  -config <path>     Config file (yaml or toml)
  -textures <dirs>   Comma-separated texture directories
  -packs <files>     Comma-separated GRF texture packs
  -workers <n>       Concurrent texture loads
  -debug             Enable debug logging
  -no-color          Disable colored output

Examples:
  x3dtool info scene.x3d
  x3dtool -packs textures.grf tree scene.x3d
  x3dtool labels scene.x3d "wheel*"
  x3dtool pack textures.grf ./textures`)
}
