package app

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Audit event types.
const (
	EventStudentNameSaved = "student.name_saved"
	EventStudentGroupSet  = "student.group_set"
	EventAdminLogin       = "admin.login"
	EventAdminLoginFailed = "admin.login_failed"
	EventAdminLogout      = "admin.logout"
	EventNewsCreated      = "news.created"
	EventSessionReset     = "session.reset"
)

// AuditEvent records a state change worth keeping outside the process log.
type AuditEvent struct {
	Type     string         `json:"type"`
	CallerID int64          `json:"caller_id"`
	Details  map[string]any `json:"details,omitempty"`
	At       time.Time      `json:"at"`
}

// AuditJournal publishes audit events. Implementations may fail; callers
// only log the failure.
type AuditJournal interface {
	Publish(ctx context.Context, ev AuditEvent) error
}

const (
	DefaultAuditTimeout = 2 * time.Second
	auditQueueSize      = 256
)

type auditJob struct {
	ev  AuditEvent
	log *logrus.Entry
}

// auditPublisher hands events to the journal on its own goroutine, in the
// order they were recorded. Each publish gets its own timeout, so a slow
// journal never spends the deadline of the message being handled.
type auditPublisher struct {
	journal AuditJournal
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan auditJob
	done   chan struct{}
}

func newAuditPublisher(journal AuditJournal, timeout time.Duration) *auditPublisher {
	p := &auditPublisher{
		journal: journal,
		timeout: timeout,
		queue:   make(chan auditJob, auditQueueSize),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *auditPublisher) run() {
	defer close(p.done)
	for job := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		if err := p.journal.Publish(ctx, job.ev); err != nil {
			job.log.WithError(err).WithField("event", job.ev.Type).Warn("Failed to publish audit event")
		}
		cancel()
	}
}

// enqueue never blocks; events are dropped while the queue is full.
func (p *auditPublisher) enqueue(job auditJob) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		job.log.WithField("event", job.ev.Type).Warn("Audit publisher closed, dropping event")
		return
	}
	select {
	case p.queue <- job:
	default:
		job.log.WithField("event", job.ev.Type).Warn("Audit queue full, dropping event")
	}
}

// close publishes what is queued and stops the worker.
func (p *auditPublisher) close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()
	<-p.done
}

func (r *Router) audit(log *logrus.Entry, ev AuditEvent) {
	ev.At = r.now()
	log.WithFields(logrus.Fields{
		"event":   ev.Type,
		"details": ev.Details,
	}).Info("Audit event")

	if r.publisher != nil {
		r.publisher.enqueue(auditJob{ev: ev, log: log})
	}
}
