// Package rworker runs jobs concurrently with an upper bound on the number
// of jobs in flight.
package rworker

import "sync"

type Group struct {
	wg    sync.WaitGroup
	rate  chan struct{}
	errCh chan<- error
}

// New returns a group running at most limit jobs at once. Job errors are
// sent to errCh without blocking; they are dropped when nobody is receiving.
func New(limit int, errCh chan<- error) *Group {
	if limit < 1 {
		limit = 1
	}
	return &Group{rate: make(chan struct{}, limit), errCh: errCh}
}

func (g *Group) Go(fn func() error) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		g.rate <- struct{}{}
		defer func() { <-g.rate }()
		if err := fn(); err != nil && g.errCh != nil {
			select {
			case g.errCh <- err:
			default:
			}
		}
	}()
}

func (g *Group) Wait() {
	g.wg.Wait()
}
