package main

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHosts(t *testing.T) {
	ips, names := parseHosts("")
	assert.Len(t, ips, 2)
	assert.Equal(t, []string{"localhost"}, names)

	ips, names = parseHosts("10.0.0.1, rating.local,,::1")
	assert.Equal(t, []net.IP{net.ParseIP("10.0.0.1"), net.ParseIP("::1")}, ips)
	assert.Equal(t, []string{"rating.local"}, names)
}

func TestSerialNotNegative(t *testing.T) {
	assert.NotEqual(t, -1, serial().Sign())
}
