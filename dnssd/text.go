package dnssd

import (
	"fmt"

	"github.com/searchlight-go/searchlight/errs"
)

// maxTextPairLength is the maximum encoded length, in octets, of a single
// TXT record key/value pair, per https://tools.ietf.org/html/rfc6763#section-6.1.
const maxTextPairLength = 255

// TextPair is one key/value entry of a service instance's TXT record.
//
// Order is significant: TXT pairs are carried in the order they were added,
// matching how a querier displays them.
type TextPair struct {
	Key   string
	Value string
}

// String returns the pair in "key=value" presentation form, or bare "key"
// when Value is empty, per https://tools.ietf.org/html/rfc6763#section-6.4.
func (p TextPair) String() string {
	if p.Value == "" {
		return p.Key
	}

	return p.Key + "=" + p.Value
}

// Encode validates that p fits within a single TXT character-string and
// returns its wire bytes.
func (p TextPair) Encode() ([]byte, error) {
	s := p.String()
	if len(s) > maxTextPairLength {
		return nil, errs.NewConfigError(
			"txt",
			fmt.Sprintf("pair %q is %d octets, exceeds the %d octet limit", p.Key, len(s), maxTextPairLength),
		)
	}

	return []byte(s), nil
}

// Truncate returns a copy of p whose Value has been shortened, if
// necessary, so that String() fits within maxTextPairLength octets. Only
// Value is shortened: a Key longer than maxTextPairLength still does not
// fit, and Encode rejects it.
func (p TextPair) Truncate() TextPair {
	s := p.String()
	if len(s) <= maxTextPairLength {
		return p
	}

	overflow := len(s) - maxTextPairLength
	if overflow >= len(p.Value) {
		return TextPair{Key: p.Key, Value: ""}
	}

	return TextPair{Key: p.Key, Value: p.Value[:len(p.Value)-overflow]}
}

// EncodeTextPairs validates and encodes an ordered list of TXT pairs into
// the []string form expected by a dns.TXT record's Txt field.
func EncodeTextPairs(pairs []TextPair) ([]string, error) {
	out := make([]string, 0, len(pairs))

	for _, p := range pairs {
		b, err := p.Encode()
		if err != nil {
			return nil, err
		}

		out = append(out, string(b))
	}

	return out, nil
}
