package netmon

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/julianstephens/hermione/internal/backend"
)

// minTransfer bounds the body transfer time of a sample from below. A body
// that arrives together with the headers is faster than the clock can tell.
const minTransfer = time.Millisecond

// HTTPProbe estimates bandwidth by downloading a backend resource. Only the
// body transfer after the response headers is timed, so round-trip latency
// does not count against throughput. Its outcomes double as connectivity
// signals: a transport failure reports offline and the next success reports
// online.
type HTTPProbe struct {
	doer backend.HTTPDoer
	url  string

	mu        sync.Mutex
	listeners map[int]func(bool)
	nextID    int
	online    *bool
}

func NewHTTPProbe(doer backend.HTTPDoer, url string) *HTTPProbe {
	if doer == nil {
		doer = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPProbe{doer: doer, url: url, listeners: map[int]func(bool){}}
}

func (p *HTTPProbe) Subscribe(fn func(online bool)) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

// Listeners returns the number of attached listeners
func (p *HTTPProbe) Listeners() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.listeners)
}

// notify publishes a connectivity transition; repeats are suppressed
func (p *HTTPProbe) notify(online bool) {
	p.mu.Lock()
	if p.online != nil && *p.online == online {
		p.mu.Unlock()
		return
	}
	p.online = &online
	fns := make([]func(bool), 0, len(p.listeners))
	for _, fn := range p.listeners {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(online)
	}
}

func (p *HTTPProbe) Sample(ctx context.Context) (float64, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return 0, false
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := p.doer.Do(req)
	if err != nil {
		if ctx.Err() == nil {
			p.notify(false)
		}
		return 0, false
	}
	defer resp.Body.Close()

	headersAt := time.Now()
	n, err := io.Copy(io.Discard, resp.Body)
	transfer := time.Since(headersAt)
	p.notify(true)
	if err != nil || n == 0 {
		return 0, false
	}
	return throughput(n, transfer), true
}

// throughput converts a body size and its transfer time to Mbps
func throughput(bytes int64, transfer time.Duration) float64 {
	if transfer < minTransfer {
		transfer = minTransfer
	}
	return float64(bytes*8) / 1e6 / transfer.Seconds()
}
