package logging

import "testing"

func TestNewReturnsUsableLogger(t *testing.T) {
	for _, dev := range []bool{true, false} {
		logger := New(dev)
		if logger == nil {
			t.Fatalf("New(%v) returned nil", dev)
		}
		logger.Sugar().Infow("smoke test", "dev", dev)
		_ = logger.Sync()
	}
}
