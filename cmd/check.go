package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/hako/durafmt"
	"github.com/spf13/cobra"

	"github.com/dnstrust/dnstrust/dnsclient"
	"github.com/dnstrust/dnstrust/nswalk"
	"github.com/dnstrust/dnstrust/report"
	"github.com/dnstrust/dnstrust/runid"
	"github.com/dnstrust/dnstrust/selector"
	"github.com/dnstrust/dnstrust/simplequery"
	"github.com/dnstrust/dnstrust/util"
	"github.com/dnstrust/dnstrust/walker"
)

//nolint:gochecknoglobals
var (
	domain     string
	ui         string
	showAll    bool
	showFailed bool
)

func newCheckCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "check",
		Short: "Probe a domain and print a test report",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}

	c.Flags().StringVarP(&domain, "domain", "d", "", "fully qualified domain name to check (required)")
	c.Flags().StringVarP(&ui, "ui", "x", "console", "output mode: console|server")
	c.Flags().BoolVar(&showAll, "all", false, "include successful test cases in the report")
	c.Flags().BoolVar(&showFailed, "failures", true, "include only failed test cases in the report")

	_ = c.MarkFlagRequired("domain")

	return c
}

func runCheck(_ *cobra.Command, _ []string) error {
	if ui == "server" {
		return newServeCommand().RunE(nil, nil)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.QueryTimeout.Duration*8)
	defer cancel()

	rng := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // NS/address selection, not cryptographic
	client := dnsclient.NewClient(rng)

	resolverNames := util.ConvertEach(simplequery.Resolvers(), func(r selector.Resolver) string { return r.DisplayName })
	fmt.Fprintln(os.Stderr, "probing", domain, "via", resolverNames)

	start := time.Now()
	suite := report.NewTestSuite(runid.New())

	simpleCases, err := simplequery.Run(ctx, client, domain)
	if err != nil {
		fmt.Fprintln(os.Stderr, "simple query probe:", err)
	}

	allCases := util.ConcatSlices(simpleCases, []*report.TestCase{
		nswalk.Run(ctx, client, rng, domain),
		walker.New(client, rng).Walk(ctx, domain),
	})

	for _, tc := range allCases {
		suite.AddTestCase(tc)
	}

	elapsed := time.Since(start)

	body, err := suite.ToJSON(showAll || !showFailed, elapsed.Milliseconds())
	if err != nil {
		return err
	}

	fmt.Println(string(body))
	fmt.Fprintln(os.Stderr, "probe finished in", durafmt.Parse(elapsed).String())

	return nil
}
