package responder

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/miekg/dns"
	"github.com/searchlight-go/searchlight/errs"
	"github.com/searchlight-go/searchlight/transport"
)

// probeInterval is the gap between successive probe queries.
//
// See https://tools.ietf.org/html/rfc6762#section-8.1.
const probeInterval = 250 * time.Millisecond

// probe sends three probe queries, 250ms apart, for every instance name
// this responder is about to announce, and fails with an
// errs.ProtocolError{Kind: errs.NameConflict} if a response claims any of
// them before the third probe completes.
//
// Probing is enabled by default in searchlight, a REDESIGN from spec.md's
// "optional, not required for correctness on a trusted LAN" framing;
// DisableProbing opts back out.
//
// See https://tools.ietf.org/html/rfc6762#section-8.1.
func (r *Responder) probe(ctx context.Context, transports []transport.Transport) error {
	if r.reg.isEmpty() {
		return nil
	}

	names := r.reg.instanceNames()
	q := probeQuery(names)

	for i := 0; i < 3; i++ {
		sendAll(r.logger, transports, q)

		if err := r.drainDuring(ctx, probeInterval, names); err != nil {
			return err
		}
	}

	return nil
}

// drainDuring services the command channel for d, discarding queries and
// checking responses for a conflicting claim to one of names.
func (r *Responder) drainDuring(ctx context.Context, d time.Duration, names map[string]struct{}) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-timer.C:
			return nil

		case c := <-r.commands:
			switch v := c.(type) {
			case *handleResponse:
				conflict := conflicts(v.Message, names)
				v.Packet.Close()
				if conflict {
					return errs.NewProtocolError(
						errs.NameConflict,
						errors.New("a probe response claims one of this responder's names"),
					)
				}

			case *handleQuery:
				v.Packet.Close()
			}
		}
	}
}

// conflicts reports whether m carries an SRV or TXT record owned by one
// of names — evidence that another responder already holds it.
func conflicts(m *dns.Msg, names map[string]struct{}) bool {
	for _, rr := range m.Answer {
		switch rr.(type) {
		case *dns.SRV, *dns.TXT:
			if _, owned := names[strings.ToLower(rr.Header().Name)]; owned {
				return true
			}
		}
	}
	return false
}

// probeQuery builds a single ANY query for every name in names.
func probeQuery(names map[string]struct{}) *dns.Msg {
	m := &dns.Msg{}
	m.Id = dns.Id()
	m.Opcode = dns.OpcodeQuery

	for name := range names {
		m.Question = append(m.Question, dns.Question{
			Name:   name,
			Qtype:  dns.TypeANY,
			Qclass: dns.ClassINET,
		})
	}

	return m
}
