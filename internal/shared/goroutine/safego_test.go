package goroutine

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tasknest/tasknest/internal/shared/logger"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSafeGo_RecoversPanic(t *testing.T) {
	out := &syncBuffer{}
	log := logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(out, nil)))

	done := make(chan struct{})
	SafeGo(log, "purge", func() {
		defer close(done)
		panic("boom")
	})
	<-done

	assert.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("goroutine=purge"))
	}, time.Second, 10*time.Millisecond)
}
