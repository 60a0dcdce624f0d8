// internal/app/system/notify/notify.go

// Package notify runs a small in-process worker pool that delivers
// transactional email off the request path. Handlers enqueue and move on;
// a delivery failure is logged, never surfaced to the client.
package notify

import (
	"sync"

	"go.uber.org/zap"

	"github.com/skillforge/skillforge/internal/app/system/mailer"
)

// Sender delivers one email. *mailer.Mailer satisfies it; tests swap in a
// recording fake.
type Sender interface {
	Send(e mailer.Email) error
}

// Pool fans queued emails out to a fixed set of workers.
type Pool struct {
	sender Sender
	queue  chan mailer.Email
	log    *zap.Logger

	mu       sync.Mutex
	closed   bool
	wg       sync.WaitGroup // workers
	overflow sync.WaitGroup // inline sends taken when the queue is full
}

// NewPool starts workers goroutines reading from a queue of queueSize.
func NewPool(sender Sender, workers, queueSize int, log *zap.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	p := &Pool{
		sender: sender,
		queue:  make(chan mailer.Email, queueSize),
		log:    log,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for e := range p.queue {
		if err := p.sender.Send(e); err != nil {
			p.log.Warn("email delivery failed",
				zap.String("to", e.To),
				zap.String("subject", e.Subject),
				zap.Error(err))
		}
	}
}

// Enqueue hands the email to the pool without blocking the caller. When the
// queue is full the send happens on its own goroutine instead of being
// dropped. After Close the email is dropped with a log rather than
// panicking on the closed channel.
func (p *Pool) Enqueue(e mailer.Email) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.log.Warn("notify pool closed, dropping email",
			zap.String("to", e.To),
			zap.String("subject", e.Subject))
		return
	}
	select {
	case p.queue <- e:
		p.mu.Unlock()
	default:
		p.overflow.Add(1)
		p.mu.Unlock()
		p.log.Warn("notify queue full, sending inline",
			zap.String("to", e.To))
		go func() {
			defer p.overflow.Done()
			if err := p.sender.Send(e); err != nil {
				p.log.Warn("email delivery failed",
					zap.String("to", e.To),
					zap.Error(err))
			}
		}()
	}
}

// Close stops accepting work and waits for queued and inline emails to
// drain. Safe to call more than once.
func (p *Pool) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()
	p.wg.Wait()
	p.overflow.Wait()
}
