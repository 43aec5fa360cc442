package browser

import (
	"time"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/miekg/dns"
	"github.com/searchlight-go/searchlight/transport"
)

// sendQuery issues s's next PTR query on every transport, with
// known-answer suppression sourced from the tracker: the question's
// answer section lists every PTR this browser can already vouch for.
//
// See https://tools.ietf.org/html/rfc6762#section-5.2.
func (b *Browser) sendQuery(transports []transport.Transport, s *subscription, now time.Time) {
	m := &dns.Msg{}
	m.Id = dns.Id()
	m.Opcode = dns.OpcodeQuery
	m.Question = []dns.Question{
		{Name: s.serviceType.String(), Qtype: dns.TypePTR, Qclass: dns.ClassINET},
	}
	m.Answer = b.tracker.KnownAnswers(s.serviceType, now)

	for _, t := range transports {
		out, err := transport.NewOutboundPacket(
			transport.Endpoint{InterfaceIndex: 0, Address: t.Group()},
			m,
		)
		if err != nil {
			logging.Log(b.logger, "error building mDNS query: %s", err)
			continue
		}

		if err := t.Write(out); err != nil {
			logging.Log(b.logger, "error sending mDNS query for %s: %s", s.serviceType, err)
		}
		out.Close()
	}
}
