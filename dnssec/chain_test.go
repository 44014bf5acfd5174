package dnssec

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dnstrust/dnstrust/record"
)

// Walker-monotonicity property: DSCount/DNSKEYCount only ever grow.
func TestChainOfTrustGrowsMonotonically(t *testing.T) {
	chain := NewChainOfTrust()

	dsBefore := chain.DSCount()
	keyBefore := chain.DNSKEYCount()

	chain.AddDS(record.NewDS("child.", 111, 8, 2, []byte{1, 2, 3}))
	assert.Greater(t, chain.DSCount(), dsBefore)

	chain.AddDNSKEY(record.NewDNSKEY("child.", 256, 3, 8, []byte{5, 6, 7}))
	assert.Greater(t, chain.DNSKEYCount(), keyBefore)

	dsMid := chain.DSCount()
	keyMid := chain.DNSKEYCount()

	// A repeated DNSKEY tag overwrites rather than shrinking the map.
	chain.AddDNSKEY(record.NewDNSKEY("child.", 256, 3, 8, []byte{5, 6, 7}))
	assert.GreaterOrEqual(t, chain.DNSKEYCount(), keyMid)
	assert.GreaterOrEqual(t, chain.DSCount(), dsMid)
}

func TestChainOfTrustMultipleDSPerTag(t *testing.T) {
	chain := NewChainOfTrust()

	chain.AddDS(record.NewDS("child.", 222, 8, 1, []byte{1}))
	chain.AddDS(record.NewDS("child.", 222, 8, 2, []byte{2}))

	assert.Len(t, chain.GetDS(222), 2)
}
