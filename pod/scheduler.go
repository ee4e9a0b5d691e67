package pod

// maxFlushPasses bounds how many cascade waves a single tick may process.
// A graph that keeps re-dirtying itself past this bound is mis-specified,
// not slow, so the flush aborts with ErrCascadeOverflow.
const maxFlushPasses = 100

// Flush is the scheduling tick: it drains the deferred queue, recomputing
// each dirty element at most once per wave and notifying its listeners
// only when the recomputed value is unequal to the previous one. Changed
// elements mark their own dependents dirty, which cascades within the
// same flush until the queue settles. Re-entrant calls are no-ops; direct
// mutations issued from inside a notification callback land on the live
// queue and are handled by a later wave of the same flush.
func (c *Container) Flush() {
	if c.disposed || c.flushing {
		return
	}
	c.flushing = true
	defer func() { c.flushing = false }()
	c.flushes++

	passes := 0
	for len(c.queue) > 0 {
		passes++
		if passes > maxFlushPasses {
			for _, el := range c.queue {
				el.queued = false
				el.dirty = false
				el.pendingNotify = false
			}
			c.queue = nil
			c.fail(ErrCascadeOverflow)
			return
		}

		queue := c.queue
		c.queue = nil
		for _, el := range queue {
			el.queued = false
			if el.disposed {
				continue
			}
			if el.dirty {
				if err := c.refresh(el); err != nil {
					c.fail(err)
					continue
				}
			}
			if el.pendingNotify {
				el.pendingNotify = false
				el.notify()
			}
		}
	}
}

// refresh recomputes a dirty element and, when the value actually changed,
// stages its notification and dirties its dependents. Callers reading
// mid-tick pull this eagerly so no factory ever observes a stale upstream
// value (glitch freedom).
func (c *Container) refresh(el *element) error {
	el.dirty = false
	old, had := el.value, el.hasValue
	if err := c.compute(el); err != nil {
		return err
	}
	if had && el.a.equals(old, el.value) {
		// Equality short-circuit: dependents stay clean, the cascade
		// stops here.
		return nil
	}
	el.pendingNotify = true
	c.markDependentsDirty(el)
	return nil
}

func (c *Container) fail(err error) {
	if c.onError != nil {
		c.onError(err)
		return
	}
	panic(err)
}

// scheduleFlush hands the pending queue to the host's next-tick primitive,
// once per settle cycle. Without a scheduler the queue waits for an
// explicit Flush or the end of a Batch.
func (c *Container) scheduleFlush() {
	if c.flushing || c.batchDepth > 0 || c.scheduled || len(c.queue) == 0 {
		return
	}
	if c.schedule == nil {
		return
	}
	c.scheduled = true
	c.schedule(func() {
		c.scheduled = false
		c.Flush()
	})
}

// StartBatch suspends flush scheduling until the matching EndBatch.
func (c *Container) StartBatch() {
	c.batchDepth++
}

// EndBatch closes the batch; the outermost EndBatch drains the queue.
func (c *Container) EndBatch() {
	c.batchDepth--
	if c.batchDepth == 0 {
		c.Flush()
	}
}

// Batch coalesces all deferred effects of fn into a single tick.
func (c *Container) Batch(fn func()) {
	c.StartBatch()
	defer c.EndBatch()
	fn()
}
