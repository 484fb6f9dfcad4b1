package metrics

import (
	"strconv"

	"golang.org/x/sys/unix"
)

func signalName(sig int) string {
	if name := unix.SignalName(unix.Signal(sig)); name != "" {
		return name
	}
	return strconv.Itoa(sig)
}
