package wacc

import (
	"errors"
	"fmt"
	"time"

	"github.com/Workiva/go-datastructures/queue"
)

// ContextFactory builds a fresh Context for one pooled Instance. Each
// pooled Instance needs its own stacks and stores; sharing a Context across
// instances would violate the single-invocation lifecycle in §3.4.
type ContextFactory func() *Context

// Pool is a ring-buffer of pre-built Instances sharing the same compiled
// module bytes, letting an embedder validate many independent transitions
// without repeating the AOT compile/deserialize path per call. Grounded on
// the teacher's pool.go, generalized from a pool of waPC Instances wrapping
// one Module to a pool of wacc Instances each wired to its own Context.
type Pool struct {
	rb        *queue.RingBuffer
	instances []*Instance
}

// NewPool builds size Instances from code, each against a Context supplied
// by factory, optionally metered by fuel (0 disables metering), and offers
// them all onto the pool's ring buffer.
func NewPool(code []byte, size uint64, factory ContextFactory, fuel uint64) (*Pool, error) {
	rb := queue.NewRingBuffer(size)
	instances := make([]*Instance, size)

	for i := uint64(0); i < size; i++ {
		builder := NewBuilder().WithBytes(code).WithContext(factory())
		if fuel > 0 {
			builder = builder.WithFuel(fuel)
		}

		inst, err := builder.TryBuild()
		if err != nil {
			return nil, fmt.Errorf("could not build pool instance %d of %d: %w", i, size, err)
		}

		ok, err := rb.Offer(inst)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("could not add instance %d to pool of size %d", i, size)
		}

		instances[i] = inst
	}

	return &Pool{rb: rb, instances: instances}, nil
}

// Get returns an Instance from the pool if one becomes available within
// timeout, else an error.
func (p *Pool) Get(timeout time.Duration) (*Instance, error) {
	v, err := p.rb.Poll(timeout)
	if err != nil {
		return nil, fmt.Errorf("get from pool timed out: %w", err)
	}

	inst, ok := v.(*Instance)
	if !ok {
		return nil, errors.New("item retrieved from pool is not an instance")
	}
	return inst, nil
}

// Return hands inst back to the pool for reuse.
func (p *Pool) Return(inst *Instance) error {
	ok, err := p.rb.Offer(inst)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("cannot return instance to full pool")
	}
	return nil
}

// Close disposes the ring buffer and closes every Instance it holds.
func (p *Pool) Close() {
	p.rb.Dispose()
	for _, inst := range p.instances {
		inst.Close()
	}
}
