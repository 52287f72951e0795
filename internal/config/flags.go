package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile  = flag.String("log-file", "", "Write logs to a rotating file")
	flagEncoding = flag.String("encoding", "", "Name encoding: raw, windows-1252, cp437 or latin1")
	flagNoAxis   = flag.Bool("no-axis-correction", false, "Keep the Z-up source basis")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagEncoding != "" {
		cfg.Import.NameEncoding = *flagEncoding
	}
	if *flagNoAxis {
		cfg.Import.SkipAxisCorrection = true
	}
}
