package bench

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fpierfederici/redbench/internal/store"
)

// memConn is an in-memory store.Conn with injectable failure behavior.
type memConn struct {
	mu   sync.Mutex
	data map[string]string

	// latency is slept once per network flush: Set and Get each pay it,
	// PipeSetGet pays it once.
	latency time.Duration

	// setErrAt makes the Nth Set call (1-based) and all later ones fail.
	setErrAt int
	setCalls int

	// corrupt makes every read return a stale payload.
	corrupt bool

	// afterOp runs after each successful Get or PipeSetGet.
	afterOp func()

	closes int
}

func newMemConn() *memConn {
	return &memConn{data: make(map[string]string)}
}

func (c *memConn) Set(_ context.Context, key, value string) error {
	if c.latency > 0 {
		time.Sleep(c.latency)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setCalls++
	if c.setErrAt > 0 && c.setCalls >= c.setErrAt {
		return errors.New("connection reset by peer")
	}
	c.data[key] = value
	return nil
}

func (c *memConn) Get(_ context.Context, key string) (string, error) {
	if c.latency > 0 {
		time.Sleep(c.latency)
	}
	c.mu.Lock()
	v, ok := c.data[key]
	corrupt := c.corrupt
	after := c.afterOp
	c.mu.Unlock()

	if corrupt {
		v, ok = "stale-value", true
	}
	if !ok {
		return "", errors.New("key not found")
	}
	if after != nil {
		after()
	}
	return v, nil
}

func (c *memConn) PipeSetGet(ctx context.Context, key, value string) (string, error) {
	if err := c.setWithoutLatency(key, value); err != nil {
		return "", err
	}
	return c.Get(ctx, key)
}

func (c *memConn) setWithoutLatency(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setCalls++
	if c.setErrAt > 0 && c.setCalls >= c.setErrAt {
		return errors.New("connection reset by peer")
	}
	c.data[key] = value
	return nil
}

func (c *memConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closes++
	return nil
}

// memProvider hands out conns from a queue, or builds default ones once the
// queue is exhausted. An entry may be an error to simulate a refused dial.
type memProvider struct {
	mu    sync.Mutex
	queue []acquireResult
	conns []*memConn
}

type acquireResult struct {
	conn *memConn
	err  error
}

func (p *memProvider) Acquire(_ context.Context) (store.Conn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var res acquireResult
	if len(p.queue) > 0 {
		res = p.queue[0]
		p.queue = p.queue[1:]
	} else {
		res = acquireResult{conn: newMemConn()}
	}
	if res.err != nil {
		return nil, res.err
	}
	p.conns = append(p.conns, res.conn)
	return res.conn, nil
}

func (p *memProvider) allData() map[string]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	merged := make(map[string]string)
	for _, c := range p.conns {
		c.mu.Lock()
		for k, v := range c.data {
			merged[k] = v
		}
		c.mu.Unlock()
	}
	return merged
}

// failingDispatcher refuses to spawn anything.
type failingDispatcher struct{}

func (failingDispatcher) Go(func()) error { return errors.New("cannot spawn worker") }
func (failingDispatcher) Wait() error     { return nil }
