package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/skyline93/seekmap/internal/config"
)

var version = "0.3.0"

// cmdRoot is the base command when no other command has been specified.
var cmdRoot = &cobra.Command{
	Use:   "seekmap",
	Short: "Evaluate block placement strategies by seek distance",
	Long: `
seekmap loads a trace of logical block accesses, models the placement of every
block on a one-dimensional disk and measures the total seek distance of the
trace. Blocks can be relocated to a contiguous region to compare placement
strategies against each other.

Input files hold one decimal block address per line and may be zstd-compressed.
`,
	Version:           version,
	SilenceErrors:     true,
	SilenceUsage:      true,
	DisableAutoGenTag: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return globalOptions.load(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
		os.Exit(0)
	},
}

// GlobalOptions holds the flags shared by all commands.
type GlobalOptions struct {
	ConfigFile string
	Verbose    bool
	Format     string
	Verify     bool

	// Config is the effective configuration after load.
	Config config.Config
}

var globalOptions GlobalOptions

func init() {
	f := cmdRoot.PersistentFlags()
	f.StringVar(&globalOptions.ConfigFile, "config", "", "read defaults from YAML `file`")
	f.BoolVarP(&globalOptions.Verbose, "verbose", "v", false, "enable debug logging")
	f.StringVar(&globalOptions.Format, "format", "", "output format, text or json (default: from config or text)")
	f.BoolVar(&globalOptions.Verify, "verify", false, "check the placement index after every relocation")
}

// load reads the config file and lets explicitly set flags override it.
func (o *GlobalOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigFile)
	if err != nil {
		return err
	}

	if o.Format != "" {
		cfg.Format = o.Format
	}
	if o.Verify {
		cfg.Verify = true
	}
	if o.Verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	o.Config = cfg
	log.SetOutput(os.Stderr)
	log.SetLevel(cfg.Level())
	return nil
}

func main() {
	if err := cmdRoot.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
