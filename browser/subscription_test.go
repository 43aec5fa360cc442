package browser

import (
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/searchlight-go/searchlight/dnssd"
)

var _ = Describe("subscription", func() {
	var (
		typ dnssd.ServiceType
		now time.Time
	)

	BeforeEach(func() {
		typ, _ = dnssd.NewServiceType("_http._tcp.local.")
		now = time.Unix(1_700_000_000, 0)
	})

	It("is due immediately on creation", func() {
		s := newSubscription(typ, now)
		Expect(s.due(now)).To(BeTrue())
	})

	It("doubles its interval on successive schedules", func() {
		s := newSubscription(typ, now)

		s.scheduleNext(now)
		Expect(s.nextQuery).To(Equal(now.Add(time.Second)))

		s.scheduleNext(now.Add(time.Second))
		Expect(s.nextQuery).To(Equal(now.Add(time.Second).Add(2 * time.Second)))
	})

	It("caps the interval at 60 seconds", func() {
		s := newSubscription(typ, now)

		t := now
		for i := 0; i < 10; i++ {
			s.scheduleNext(t)
			t = s.nextQuery
		}

		s.scheduleNext(t)
		Expect(s.nextQuery.Sub(t)).To(Equal(60 * time.Second))
	})

	It("resets the backoff only on the first response", func() {
		s := newSubscription(typ, now)

		s.scheduleNext(now)
		s.scheduleNext(now.Add(time.Second)) // interval now 4s

		s.onResponse()
		Expect(s.backoff.Next()).To(Equal(time.Second))

		// a second response must not reset it again
		s.onResponse()
		Expect(s.backoff.Next()).To(Equal(2 * time.Second))
	})
})
