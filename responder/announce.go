package responder

import (
	"context"
	"time"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/miekg/dns"
	"github.com/searchlight-go/searchlight/dnssd"
	"github.com/searchlight-go/searchlight/internal/clock"
	"github.com/searchlight-go/searchlight/transport"
)

// announce sends the two unsolicited multicast responses required on
// startup, one second apart, containing every registered record.
//
// See https://tools.ietf.org/html/rfc6762#section-8.3.
func (r *Responder) announce(ctx context.Context, transports []transport.Transport) error {
	if r.reg.isEmpty() {
		return nil
	}

	m := newAnnouncement(cacheFlushed(r.reg.allRecords()))

	for i := 0; i < 2; i++ {
		sendAll(r.logger, transports, m)

		if i == 0 {
			if err := clock.Sleep(ctx, time.Second); err != nil {
				return err
			}
		}
	}

	return nil
}

// goodbye sends two multicast responses, one second apart, withdrawing
// every registered record by setting their TTL to zero — the same
// repeated-send shape announce uses on startup, so a single dropped
// packet doesn't leave stale records live for their full original TTL.
//
// See https://tools.ietf.org/html/rfc6762#section-10.1.
func (r *Responder) goodbye(transports []transport.Transport) {
	if r.reg.isEmpty() {
		return
	}

	m := newAnnouncement(cacheFlushed(dnssd.Goodbye(r.reg.allRecords())))

	for i := 0; i < 2; i++ {
		sendAll(r.logger, transports, m)

		// goodbye runs as the run loop is already unwinding from a
		// canceled context, so the inter-send delay can't be made
		// cancelable the way announce's is.
		if i == 0 {
			time.Sleep(time.Second)
		}
	}
}

func cacheFlushed(rrs []dns.RR) []dns.RR {
	out := make([]dns.RR, len(rrs))
	for i, rr := range rrs {
		out[i] = applyCacheFlush(rr)
	}
	return out
}

func newAnnouncement(rrs []dns.RR) *dns.Msg {
	m := &dns.Msg{}
	m.Response = true
	m.Authoritative = true
	m.Compress = true
	m.Answer = rrs
	return m
}

// sendAll writes m to the multicast group of every transport, logging and
// continuing past any individual send failure.
func sendAll(logger logging.Logger, transports []transport.Transport, m *dns.Msg) {
	for _, t := range transports {
		if err := sendMulticast(t, m); err != nil {
			logging.Log(logger, "error sending mDNS message: %s", err)
		}
	}
}

// sendMulticast writes m to t's multicast group, on the interface t was
// bound with. Unlike transport.SendMulticast it has no InboundPacket to
// derive an interface index from, since the message it sends is
// unsolicited; it addresses interface 0, letting the kernel pick the
// default multicast route, rather than replicating per joined interface
// (Transport does not expose the interfaces it joined).
func sendMulticast(t transport.Transport, m *dns.Msg) error {
	out, err := transport.NewOutboundPacket(
		transport.Endpoint{InterfaceIndex: 0, Address: t.Group()},
		m,
	)
	if err != nil {
		return err
	}
	defer out.Close()

	return t.Write(out)
}
