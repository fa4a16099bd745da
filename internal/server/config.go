package server

import (
	"net"
	"strconv"
)

// HttpConfig configures the local emulator server.
type HttpConfig struct {
	// Host is the address to listen on.
	Host string `conf:"host"`

	// Port is the port to listen on.
	Port int `conf:"port"`

	// H2c enables HTTP/2 cleartext upgrades.
	H2c bool `conf:"h2c"`
}

// Address returns the listen address.
func (c HttpConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
