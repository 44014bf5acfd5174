package dnsclient

import (
	"fmt"

	"github.com/miekg/dns"

	"github.com/dnstrust/dnstrust/record"
)

// mapRR converts a transport-library RR into a typed record. Unknown types
// are a hard error, not a silent omission.
func mapRR(rr dns.RR) (record.Record, error) {
	owner := rr.Header().Name

	switch v := rr.(type) {
	case *dns.A:
		return record.NewA(owner, v.A), nil
	case *dns.AAAA:
		return record.NewAAAA(owner, v.AAAA), nil
	case *dns.NS:
		return record.NewNS(owner, v.Ns), nil
	case *dns.PTR:
		return record.NewPTR(owner, v.Ptr), nil
	case *dns.TXT:
		txt := ""
		for _, chunk := range v.Txt {
			txt += chunk
		}

		return record.NewTXT(owner, txt), nil
	case *dns.MX:
		return record.NewMX(owner, v.Preference, v.Mx), nil
	case *dns.SOA:
		return record.NewSOA(owner, v.Ns, v.Mbox, v.Serial, v.Refresh, v.Retry, v.Expire, v.Minttl), nil
	case *dns.DNSKEY:
		pub, err := decodeDNSKEYPublicKey(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQueryError, err)
		}

		return record.NewDNSKEY(owner, v.Flags, v.Protocol, v.Algorithm, pub), nil
	case *dns.DS:
		digest, err := hexDecode(v.Digest)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQueryError, err)
		}

		return record.NewDS(owner, v.KeyTag, v.Algorithm, v.DigestType, digest), nil
	case *dns.RRSIG:
		return recordFromRRSIG(v), nil
	default:
		return nil, fmt.Errorf("%w: unknown record type %s", ErrQueryError, dns.TypeToString[rr.Header().Rrtype])
	}
}

func mapRRSIG(v *dns.RRSIG) record.RRSIG {
	return recordFromRRSIG(v)
}

func recordFromRRSIG(v *dns.RRSIG) record.RRSIG {
	signature, _ := base64Decode(v.Signature)

	return record.NewRRSIG(
		v.Header().Name,
		record.Type(v.TypeCovered),
		v.Algorithm,
		v.Labels,
		v.OrigTtl,
		v.Expiration,
		v.Inception,
		v.KeyTag,
		v.SignerName,
		signature,
	)
}

// decodeDNSKEYPublicKey re-derives the raw RFC 3110/4034 public key octets
// from the library's own base64 storage, since record.DNSKEY carries raw
// bytes rather than a decoded string.
func decodeDNSKEYPublicKey(v *dns.DNSKEY) ([]byte, error) {
	return base64Decode(v.PublicKey)
}
