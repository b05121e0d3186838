package aggregator

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"syscall"
)

// listenTCP binds address, moving to the next port while the current one is
// already in use.
// Params: address host:port; retries how many following ports may be tried.
// Returns: bound listener or the last bind error.
func listenTCP(address string, retries int) (net.Listener, error) {
	host, rawPort, err := net.SplitHostPort(address)
	if err != nil {
		return nil, fmt.Errorf("listen %q: %w", address, err)
	}
	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return nil, fmt.Errorf("listen %q: invalid port: %w", address, err)
	}
	// Port 0 is picked by the kernel and never collides.
	if port == 0 {
		retries = 0
	}

	candidate := address
	for attempt := 0; ; attempt++ {
		ln, err := net.Listen("tcp", candidate)
		if err == nil {
			return ln, nil
		}
		if attempt >= retries || port+attempt+1 > 65535 || !errors.Is(err, syscall.EADDRINUSE) {
			return nil, fmt.Errorf("listen %q: %w", candidate, err)
		}
		candidate = net.JoinHostPort(host, strconv.Itoa(port+attempt+1))
	}
}
