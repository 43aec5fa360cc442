package dnssd_test

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestDnssd(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "dnssd Suite")
}
