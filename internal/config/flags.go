package config

import (
	"flag"
	"strings"
)

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagTextures = flag.String("textures", "", "Comma-separated texture directories")
	flagPacks    = flag.String("packs", "", "Comma-separated GRF texture packs")
	flagWorkers  = flag.Int("workers", 0, "Concurrent texture loads")
	flagNoColor  = flag.Bool("no-color", false, "Disable colored output")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagTextures != "" {
		cfg.Textures.Roots = splitList(*flagTextures)
	}
	if *flagPacks != "" {
		cfg.Textures.Packs = splitList(*flagPacks)
	}
	if *flagWorkers > 0 {
		cfg.Textures.Workers = *flagWorkers
	}
	if *flagNoColor {
		cfg.Output.Color = false
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
