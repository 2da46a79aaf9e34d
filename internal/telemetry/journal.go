package telemetry

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
)

// DefaultJournalRate bounds journal writes per second of wall time.
const DefaultJournalRate = 5000

// Journal writes simulation events as JSON lines. Events beyond the rate
// limit are dropped and counted.
type Journal struct {
	mu      sync.Mutex
	w       *bufio.Writer
	enc     *json.Encoder
	closer  io.Closer
	limiter *rate.Limiter
	skip    map[tanks.EventType]bool

	written uint64
	dropped uint64
}

// NewJournal creates a journal writing to w. A perSecond of zero or less
// disables rate limiting. If w is an io.Closer, Close closes it.
func NewJournal(w io.Writer, perSecond int) *Journal {
	bw := bufio.NewWriter(w)
	j := &Journal{
		w:       bw,
		enc:     json.NewEncoder(bw),
		limiter: rate.NewLimiter(rate.Inf, 0),
		skip:    make(map[tanks.EventType]bool),
	}
	if perSecond > 0 {
		j.limiter = rate.NewLimiter(rate.Limit(perSecond), perSecond/10+1)
	}
	if c, ok := w.(io.Closer); ok {
		j.closer = c
	}
	return j
}

// Skip excludes event types from the journal. The per-tick movement events
// are usually skipped to keep the file small.
func (j *Journal) Skip(types ...tanks.EventType) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, t := range types {
		j.skip[t] = true
	}
}

// ObserveTick implements tanks.Observer.
func (j *Journal) ObserveTick(_ time.Duration, events []tanks.Event, _ tanks.SessionState) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, ev := range events {
		if j.skip[ev.Type] {
			continue
		}
		if !j.limiter.Allow() {
			j.dropped++
			continue
		}
		if err := j.enc.Encode(ev); err != nil {
			j.dropped++
			continue
		}
		j.written++
	}
}

// Stats returns the number of written and dropped events.
func (j *Journal) Stats() (written, dropped uint64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.written, j.dropped
}

// Flush writes buffered lines to the underlying writer.
func (j *Journal) Flush() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.w.Flush(); err != nil {
		return fmt.Errorf("telemetry: cannot flush journal: %w", err)
	}
	return nil
}

// Close flushes the journal and closes the underlying writer if it can be
// closed.
func (j *Journal) Close() error {
	if err := j.Flush(); err != nil {
		return err
	}
	if j.closer != nil {
		return j.closer.Close()
	}
	return nil
}
