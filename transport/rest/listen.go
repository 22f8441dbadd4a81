package rest

import (
	"errors"
	"fmt"
	"math/rand"
	"net"
	"strconv"
	"syscall"

	"github.com/sirupsen/logrus"
)

const (
	minRandomPort = 1024
	maxRandomPort = 65535
)

// Listen opens a tcp listener on port, or on a random port when port is zero.
// While the address is in use it retries on random ports, at most attempts times in total.
func Listen(host string, port int, attempts int) (net.Listener, error) {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 || port == 0 {
			port = minRandomPort + rand.Intn(maxRandomPort-minRandomPort+1)
		}
		var ln net.Listener
		ln, err = net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
		if err == nil {
			logrus.WithField("addr", ln.Addr().String()).Infoln("Api listener bound.")
			return ln, nil
		}
		if !errors.Is(err, syscall.EADDRINUSE) {
			return nil, fmt.Errorf("listen: %w", err)
		}
		logrus.WithField("port", port).Warningln("Port in use, retrying.")
	}
	return nil, fmt.Errorf("listen after %d attempts: %w", attempts, err)
}
