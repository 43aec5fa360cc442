package dnssd

import "net"

// ServiceBuilder accumulates the configuration of a ServiceRegistration.
//
// It follows the functional-builder idiom used throughout searchlight:
// each method returns the receiver so calls can be chained, and no
// validation occurs until Build().
type ServiceBuilder struct {
	reg ServiceRegistration
	err error
}

// NewServiceBuilder starts building a ServiceRegistration for the given
// service type, instance name and port.
//
// The target hostname defaults to the instance name qualified with
// ".local.", per https://tools.ietf.org/html/rfc6763#section-4.1. Use
// Hostname to override it.
func NewServiceBuilder(t ServiceType, instance string, port uint16) *ServiceBuilder {
	b := &ServiceBuilder{
		reg: ServiceRegistration{
			Type:     t,
			Instance: instance,
			Port:     port,
			Hostname: instance + ".local.",
		},
	}

	return b
}

// AddAddress adds an A or AAAA address (chosen by ip.To4()) to advertise
// for the instance's target host.
func (b *ServiceBuilder) AddAddress(ip net.IP) *ServiceBuilder {
	if b.err != nil {
		return b
	}

	b.reg.Addresses = append(b.reg.Addresses, ip)
	return b
}

// AddText appends a key/value pair to the instance's TXT record, in the
// order it was added. Build fails if the encoded pair exceeds 255 octets;
// use AddTextTruncated to silently shorten oversized values instead.
func (b *ServiceBuilder) AddText(key, value string) *ServiceBuilder {
	if b.err != nil {
		return b
	}

	b.reg.Text = append(b.reg.Text, TextPair{Key: key, Value: value})
	return b
}

// AddTextTruncated appends a key/value pair, silently truncating value so
// the encoded pair fits within the 255 octet TXT character-string limit.
func (b *ServiceBuilder) AddTextTruncated(key, value string) *ServiceBuilder {
	if b.err != nil {
		return b
	}

	p := TextPair{Key: key, Value: value}.Truncate()
	b.reg.Text = append(b.reg.Text, p)
	return b
}

// Hostname overrides the target hostname advertised in the instance's SRV
// record. It must be a fully-qualified name.
func (b *ServiceBuilder) Hostname(h string) *ServiceBuilder {
	if b.err != nil {
		return b
	}

	b.reg.Hostname = h
	return b
}

// Build validates the accumulated configuration and returns the immutable
// ServiceRegistration.
func (b *ServiceBuilder) Build() (ServiceRegistration, error) {
	if b.err != nil {
		return ServiceRegistration{}, b.err
	}

	if err := b.reg.Validate(); err != nil {
		return ServiceRegistration{}, err
	}

	return b.reg, nil
}
