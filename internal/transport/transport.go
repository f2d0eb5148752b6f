// internal/transport/transport.go
package transport

import (
	"context"
	"fmt"
	"log"
	"math/rand"
)

// Sender delivers one rendered message to a recipient address. Real email
// transport lives outside this service; implementations here are stand-ins.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender logs instead of sending. FailureRate (0..1) makes a fraction of
// sends fail, which exercises the failed-unit path in local runs.
type LogSender struct {
	FailureRate float64
}

func (s *LogSender) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.FailureRate > 0 && rand.Float64() < s.FailureRate {
		return fmt.Errorf("simulated transport failure for %s", to)
	}
	log.Printf("📤 sent to %s: %q (%d bytes)\n", to, subject, len(body))
	return nil
}
