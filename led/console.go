package led

import (
	"fmt"
	"os"
	"sync"

	"periph.io/x/extra/devices/screen"
)

// Console renders every output line as a row of colored blocks on a terminal,
// one line per channel. Useful without strips attached.
type Console struct {
	mu sync.Mutex
}

func NewConsole() *Console {
	return &Console{}
}

func (c *Console) Bind(b Binding) (Driver, error) {
	if b.Length <= 0 {
		return nil, fmt.Errorf("channel %d: invalid LED count: %d", b.Channel, b.Length)
	}
	d := newDrawerDriver(screen.New(b.Length), b.Order, b.Length)
	d.before = func() {
		c.mu.Lock()
		fmt.Fprintf(os.Stdout, "%d: ", b.Channel)
	}
	d.after = func() {
		fmt.Fprintf(os.Stdout, "\n")
		c.mu.Unlock()
	}
	return d, nil
}
