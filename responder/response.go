package responder

import (
	"context"

	"github.com/miekg/dns"
	"github.com/searchlight-go/searchlight/transport"
)

// handleResponse processes one inbound mDNS response while the responder
// is fully running (post-probe, post-announce).
//
// https://tools.ietf.org/html/rfc6762#section-9 calls for a responder
// observing a conflicting response to one of its unique records to
// "defend" it with a single corrective response; searchlight does this by
// re-announcing, since its registry holds no per-record authority state
// to construct a narrower reply from.
type handleResponse struct {
	Packet  *transport.InboundPacket
	Message *dns.Msg
}

func (c *handleResponse) Execute(ctx context.Context, r *Responder) error {
	defer c.Packet.Close()

	if conflicts(c.Message, r.reg.instanceNames()) {
		m := newAnnouncement(cacheFlushed(r.reg.allRecords()))
		r.sendRetrying(ctx, func() (bool, error) { return transport.SendMulticast(c.Packet, m) })
	}

	return nil
}
