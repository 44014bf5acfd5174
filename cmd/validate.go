package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/dnstrust/dnstrust/dnsclient"
	"github.com/dnstrust/dnstrust/walker"
)

// newValidateCommand runs only the DNSSEC walker against a domain,
// skipping the simple-query and NS-walk families — useful for quickly
// isolating a chain-of-trust failure without the rest of the report.
func newValidateCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "validate",
		Short: "Run only the DNSSEC chain-of-trust walker against a domain",
		Args:  cobra.NoArgs,
		RunE:  runValidate,
	}

	c.Flags().StringVarP(&domain, "domain", "d", "", "fully qualified domain name to validate (required)")
	_ = c.MarkFlagRequired("domain")

	return c
}

func runValidate(_ *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.QueryTimeout.Duration*8)
	defer cancel()

	rng := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // NS/address selection, not cryptographic
	client := dnsclient.NewClient(rng)

	tc := walker.New(client, rng).Walk(ctx, domain)

	body, err := json.MarshalIndent(tc, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(body))

	return nil
}
