package browser

import (
	"context"
	"strings"
	"time"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/miekg/dns"
	"github.com/searchlight-go/searchlight/dnssd"
	"github.com/searchlight-go/searchlight/transport"
)

// handleMessage processes one inbound mDNS response: it filters to
// subscribed service types and hands matching messages to the presence
// tracker, per the browser design's response-intake step.
type handleMessage struct {
	Packet  *transport.InboundPacket
	Message *dns.Msg
}

func (c *handleMessage) execute(ctx context.Context, b *Browser) (bool, error) {
	defer c.Packet.Close()

	now := time.Now()
	matched := false

	for _, s := range b.subscriptions {
		if !messageMatches(c.Message, s.serviceType) {
			continue
		}

		matched = true
		s.onResponse()

		events := b.tracker.Ingest(s.serviceType, c.Message, c.Packet.Source.Address, now)
		for _, ev := range events {
			if b.callback(ev) {
				return true, nil
			}
		}
	}

	b.trackIgnored(matched)

	return false, nil
}

// trackIgnored maintains the consecutive-ignored-packet counter behind
// WithMaxIgnoredPackets, logging once the threshold is reached.
func (b *Browser) trackIgnored(matched bool) {
	if matched {
		b.ignoredRun = 0
		return
	}

	if b.maxIgnored == 0 {
		return
	}

	b.ignoredRun++
	if b.ignoredRun >= b.maxIgnored {
		logging.Log(b.logger, "received %d consecutive mDNS responses matching none of this browser's subscribed service types", b.ignoredRun)
		b.ignoredRun = 0
	}
}

// messageMatches reports whether m carries a PTR naming serviceType, or
// an SRV owned under it — evidence the message is relevant to a
// subscriber.
func messageMatches(m *dns.Msg, serviceType dnssd.ServiceType) bool {
	typeName := strings.ToLower(serviceType.String())

	matchesRecords := func(rrs []dns.RR) bool {
		for _, rr := range rrs {
			switch v := rr.(type) {
			case *dns.PTR:
				if strings.EqualFold(v.Header().Name, typeName) {
					return true
				}
			case *dns.SRV:
				if strings.HasSuffix(strings.ToLower(v.Header().Name), "."+typeName) {
					return true
				}
			}
		}
		return false
	}

	return matchesRecords(m.Answer) || matchesRecords(m.Ns) || matchesRecords(m.Extra)
}
