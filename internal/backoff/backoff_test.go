package backoff_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/searchlight-go/searchlight/internal/backoff"
)

func TestBackoff(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "backoff Suite")
}

var _ = Describe("Doubling", func() {
	It("doubles each call up to the cap", func() {
		d := backoff.New(time.Second, 60*time.Second)

		var got []time.Duration
		for i := 0; i < 8; i++ {
			got = append(got, d.Next())
		}

		Expect(got).To(Equal([]time.Duration{
			1 * time.Second,
			2 * time.Second,
			4 * time.Second,
			8 * time.Second,
			16 * time.Second,
			32 * time.Second,
			60 * time.Second,
			60 * time.Second,
		}))
	})

	It("resets to the initial interval", func() {
		d := backoff.New(time.Second, 60*time.Second)
		d.Next()
		d.Next()
		d.Reset()

		Expect(d.Next()).To(Equal(time.Second))
	})
})
