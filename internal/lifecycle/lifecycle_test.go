package lifecycle_test

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/searchlight-go/searchlight/internal/lifecycle"
)

func TestLifecycle(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "lifecycle Suite")
}

var _ = Describe("Loop", func() {
	It("waits for the run function to observe cancellation", func() {
		started := make(chan struct{})

		l := lifecycle.Start(context.Background(), func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			return ctx.Err()
		})

		<-started
		err := l.Shutdown(context.Background())
		Expect(err).NotTo(HaveOccurred())
	})

	It("is idempotent on a second Shutdown call", func() {
		l := lifecycle.Start(context.Background(), func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})

		Expect(l.Shutdown(context.Background())).NotTo(HaveOccurred())
		Expect(l.Shutdown(context.Background())).NotTo(HaveOccurred())
	})

	It("surfaces a fatal error from the run function", func() {
		boom := errors.New("boom")

		l := lifecycle.Start(context.Background(), func(ctx context.Context) error {
			return boom
		})

		// allow the goroutine to finish before shutting down
		<-l.Done()

		err := l.Shutdown(context.Background())
		Expect(err).To(HaveOccurred())
		Expect(errors.Unwrap(err)).To(Equal(boom))
	})

	It("bounds Shutdown by the passed context", func() {
		l := lifecycle.Start(context.Background(), func(ctx context.Context) error {
			<-ctx.Done()
			time.Sleep(50 * time.Millisecond)
			return ctx.Err()
		})

		ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
		defer cancel()

		err := l.Shutdown(ctx)
		Expect(err).To(HaveOccurred())
	})
})
