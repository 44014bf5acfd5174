// Package cmd implements the CLI surface: a required
// --domain argument, a --ui console|server switch, and an --all/--failures
// pair controlling whether passing cases appear in the JSON report.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dnstrust/dnstrust/config"
	"github.com/dnstrust/dnstrust/log"
	"github.com/dnstrust/dnstrust/util"
)

//nolint:gochecknoglobals
var (
	version    = "undefined"
	buildTime  = "undefined"
	configPath string
	cfg        *config.Config
)

// NewRootCommand builds the top-level "dnstrust" command tree.
func NewRootCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "dnstrust",
		Short: "dnstrust probes a domain's DNSSEC chain of trust",
		Long: `dnstrust walks the DNS delegation hierarchy from the root down to a
target domain, verifying that every DS/DNSKEY/RRSIG chains back to the
IANA root anchors, and reports basic reachability alongside it.`,
	}

	c.PersistentFlags().StringVarP(&configPath, "config", "c", "./config.yml", "path to config file")

	c.AddCommand(newCheckCommand(), newServeCommand(), newValidateCommand(), newVersionCommand())

	return c
}

//nolint:gochecknoinits
func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	loaded, err := config.Load(configPath)
	util.FatalOnError("can't load config: ", err)

	cfg = loaded

	log.ConfigureLogger(cfg.Log)
}

// Execute runs the CLI. Failed test cases do not change the exit code
// (they are reported in the JSON document); a command error, such as a
// missing required flag, exits with status 1.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
