package slicer

import "sync"

// Progress reports how many layers of a slicing job have completed. It is
// safe for concurrent use by the driver's workers and any number of
// observers. completed is a plain counter guarded by mu, not an atomic. It
// is an observable monotone counter; the driver does not rely on it to
// order the produced layer data, which is ordered by the driver's own join
// instead.
type Progress struct {
	mu        sync.Mutex
	cond      *sync.Cond
	completed uint32
	total     uint32
}

// NewProgress returns a Progress for a job with the given total layer
// count.
func NewProgress(total uint32) *Progress {
	p := &Progress{total: total}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Wait blocks until the next increment (or the job's terminal completion)
// is notified, then returns the current completed count.
func (p *Progress) Wait() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cond.Wait()
	return p.completed
}

// Completed returns the number of layers completed so far.
func (p *Progress) Completed() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.completed
}

// Total returns the total number of layers in the job.
func (p *Progress) Total() uint32 {
	return p.total
}

// increment advances the completed count by one and wakes every waiter.
func (p *Progress) increment() {
	p.mu.Lock()
	p.completed++
	p.mu.Unlock()
	p.cond.Broadcast()
}

// notifyDone wakes every waiter without advancing the count, used once
// after the job finishes so a waiter blocked on the final increment still
// observes completion.
func (p *Progress) notifyDone() {
	p.cond.Broadcast()
}
