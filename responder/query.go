package responder

import (
	"context"
	"time"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/miekg/dns"
	"github.com/searchlight-go/searchlight/internal/clock"
	"github.com/searchlight-go/searchlight/transport"
)

// unicastResponseBit is the top bit of a question's qclass, set by a
// querier preferring a unicast reply.
//
// See https://tools.ietf.org/html/rfc6762#section-18.12.
const unicastResponseBit = 1 << 15

// wantsUnicastResponse reports whether q asked for a unicast reply, and
// returns a copy of q with the bit cleared so q.Qclass reflects the real
// question class.
func wantsUnicastResponse(q dns.Question) (bool, dns.Question) {
	unicast := q.Qclass&unicastResponseBit != 0
	q.Qclass &^= unicastResponseBit
	return unicast, q
}

// handleQuery answers one inbound mDNS query, per the responder design's
// four-step answering algorithm.
//
// See https://tools.ietf.org/html/rfc6762#section-6.
type handleQuery struct {
	Packet  *transport.InboundPacket
	Message *dns.Msg
}

func (c *handleQuery) Execute(ctx context.Context, r *Responder) error {
	defer c.Packet.Close()

	legacy := c.Packet.Source.IsLegacy()

	uRes := newResponse(c.Message.Id)
	mRes := newResponse(0)

	for _, rawQ := range c.Message.Question {
		unicast, q := wantsUnicastResponse(rawQ)

		sec := r.reg.answer(q.Name, q.Qtype)
		if sec.isEmpty() {
			continue
		}

		sec.Answer = suppressKnown(sec.Answer, c.Message.Answer)
		sec.Additional = suppressKnown(sec.Additional, c.Message.Answer)

		dest := mRes
		if unicast || legacy {
			dest = uRes
		}

		for _, rr := range sec.Answer {
			dest.Answer = append(dest.Answer, applyCacheFlush(rr))
		}
		for _, rr := range sec.Additional {
			dest.Extra = append(dest.Extra, applyCacheFlush(rr))
		}
	}

	r.sendRetrying(ctx, func() (bool, error) { return transport.SendUnicast(c.Packet, uRes) })
	r.sendRetrying(ctx, func() (bool, error) { return transport.SendMulticast(c.Packet, mRes) })

	return nil
}

// newResponse returns an empty mDNS response message, id set per
// https://tools.ietf.org/html/rfc6762#section-18.1 (zero for a true
// multicast reply, the query's id for a unicast/legacy reply).
func newResponse(id uint16) *dns.Msg {
	m := &dns.Msg{}
	m.Id = id
	m.Response = true
	m.Opcode = dns.OpcodeQuery
	m.Authoritative = true
	m.Compress = true
	return m
}

// sendRetrying calls send, and on a transient error, retries once after a
// 1ms yield before logging and dropping — per the packet I/O loop's send
// policy.
func (r *Responder) sendRetrying(ctx context.Context, send func() (bool, error)) {
	if _, err := send(); err == nil {
		return
	}

	if err := clock.Sleep(ctx, time.Millisecond); err != nil {
		return
	}

	if _, err := send(); err != nil {
		logging.Log(r.logger, "error sending mDNS message: %s", err)
	}
}
