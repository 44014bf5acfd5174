// Package selector represents "which server to ask next": an immutable
// pairing of an IP address and a display name, constructed either from a
// name (A lookup), from an IP (PTR lookup), from both, or defaulted to the
// system resolver.
package selector

import (
	"context"
	"fmt"
	"math/rand"
	"net"
)

// DefaultDisplayName is used for the system-resolver construction mode.
const DefaultDisplayName = "default.resolver"

// DefaultIPAddr is used when no system resolver address is known; probes
// running against the OS stub resolver pass "" down to the transport,
// which falls back to the platform's configured resolver.
const DefaultIPAddr = ""

// Resolver is immutable once constructed; its lifetime is a single test
// case.
type Resolver struct {
	IPAddr      string
	DisplayName string
}

func (r Resolver) String() string {
	return fmt.Sprintf("%s (%s)", r.DisplayName, r.IPAddr)
}

// Default returns the system-resolver selector.
func Default() Resolver {
	return Resolver{IPAddr: DefaultIPAddr, DisplayName: DefaultDisplayName}
}

// FromIPAndName constructs a resolver when both coordinates are already
// known, e.g. after a caller has resolved a nameserver's name to an
// address itself.
func FromIPAndName(ip, name string) Resolver {
	return Resolver{IPAddr: ip, DisplayName: name}
}

// AddressLookup resolves a name to its candidate A addresses. Implemented
// by dnsclient.Client; kept as a narrow interface here so this package
// never needs to import the DNS client.
type AddressLookup interface {
	LookupA(ctx context.Context, name string, resolver Resolver) ([]net.IP, error)
}

// NameLookup resolves an IP address to its PTR name.
type NameLookup interface {
	LookupPTR(ctx context.Context, ip string, resolver Resolver) (string, error)
}

// FromName looks up name's A records via bootstrap (the caller's current
// resolver) and picks one address uniformly at random.
func FromName(ctx context.Context, lookup AddressLookup, bootstrap Resolver, name string, rng *rand.Rand) (Resolver, error) {
	addrs, err := lookup.LookupA(ctx, name, bootstrap)
	if err != nil {
		return Resolver{}, err
	}

	if len(addrs) == 0 {
		return Resolver{}, fmt.Errorf("no A records for %s", name)
	}

	chosen := addrs[rng.Intn(len(addrs))]

	return Resolver{IPAddr: chosen.String(), DisplayName: name}, nil
}

// FromIP looks up ip's PTR name via bootstrap.
func FromIP(ctx context.Context, lookup NameLookup, bootstrap Resolver, ip string) (Resolver, error) {
	name, err := lookup.LookupPTR(ctx, ip, bootstrap)
	if err != nil {
		return Resolver{}, err
	}

	return Resolver{IPAddr: ip, DisplayName: name}, nil
}
