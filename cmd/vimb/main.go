// Command vimb runs the key remapping engine in a terminal: keys typed on
// the screen flow through the mapping table and the resolved commands show
// on the status line.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kasperlewau/vimb/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, showVersion := parseFlags()

	if showVersion {
		fmt.Printf("vimb %s (%s)\n", version, commit)
		return 0
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() (app.Options, bool) {
	var (
		configPath  = flag.String("config", defaultConfigPath(), "settings file")
		scriptPath  = flag.String("script", "", "Lua script defining mappings (overrides config)")
		logLevel    = flag.String("log-level", "info", "log level: debug, info, warn, error")
		watch       = flag.Bool("watch", true, "reload map files when they change")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	logger := app.NewLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(*logLevel),
		Output: os.Stderr,
		Prefix: "vimb",
	})

	return app.Options{
		ConfigPath:    *configPath,
		ScriptPath:    *scriptPath,
		Logger:        logger,
		WatchMapFiles: *watch,
	}, *showVersion
}

// defaultConfigPath follows XDG conventions with a home-directory
// fallback.
func defaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "vimb", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "vimb", "config.toml")
}
