package serial

// Link is the other end of the serial cable, seen from this console.
// Send is called with each outgoing bit, most significant first, and
// Receive returns the incoming bit shifted in at the same clock.
type Link interface {
	Send(bit bool)
	Receive() bool
}

// nullLink acts as if no cable is plugged in. The data line
// is pulled high, so a disconnected console receives 0xFF.
type nullLink struct{}

func (nullLink) Send(bool) {}

func (nullLink) Receive() bool { return true }
