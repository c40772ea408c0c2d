package timer

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/corespace/tuplespace/util"
)

var log = util.New("timer")

var (
	// NotRunning is returned by Add when the Scheduler's Run loop has
	// not been started (or has already exited).
	NotRunning = errors.New("timer: scheduler not running")

	// AlreadyRunning is returned by Run if it is called more than once
	// concurrently.
	AlreadyRunning = errors.New("timer: scheduler already running")
)

const (
	notRunning = int64(iota)
	running
)

type entry struct {
	id   uint64
	at   time.Time
	fire func()
}

// Scheduler manages a set of pending (deadline, callback) pairs with a
// single live *time.Timer. It must be Run in a goroutine before Add or
// Cancel are useful; Run returns when its context is cancelled, which
// is how Space.Close stops it without leaking a goroutine.
type Scheduler struct {
	Debug bool

	mu      sync.Mutex
	backlog []*entry
	up      chan *entry
	ready   chan struct{}
	started chan struct{}
	running int64
}

// New returns a Scheduler that is not yet running.
func New() *Scheduler {
	return &Scheduler{
		up:      make(chan *entry, 32),
		ready:   make(chan struct{}, 1),
		started: make(chan struct{}),
	}
}

// Started returns a channel that closes once Run's loop is actually
// selecting, so a caller that does `go sched.Run(ctx)` can block on it
// instead of racing IsRunning against goroutine scheduling.
func (s *Scheduler) Started() <-chan struct{} {
	return s.started
}

// Run starts the scheduler loop in the calling goroutine. It returns
// when ctx is cancelled. Callers typically do `go sched.Run(ctx)`.
func (s *Scheduler) Run(ctx context.Context) error {
	if !atomic.CompareAndSwapInt64(&s.running, notRunning, running) {
		return AlreadyRunning
	}
	defer atomic.StoreInt64(&s.running, notRunning)
	close(s.started)

	var live *time.Timer
	for {
		select {
		case <-ctx.Done():
			if live != nil {
				live.Stop()
			}
			return nil
		case e := <-s.up:
			if live != nil {
				live.Stop()
			}
			d := time.Until(e.at)
			id := e.id
			live = time.AfterFunc(d, func() {
				s.mu.Lock()
				pending := false
				for _, x := range s.backlog {
					if x == e {
						pending = true
						break
					}
				}
				s.mu.Unlock()
				if !pending {
					return // cancelled before it fired
				}
				log.Logf("firing %d", id)
				s.Cancel(id) // optimistic: the entry has already fired
				go e.fire()
			})
		}
	}
}

// IsRunning reports whether Run is currently executing.
func (s *Scheduler) IsRunning() bool {
	return atomic.LoadInt64(&s.running) == running
}

// Add schedules fire to run at or after at, keyed by id (used only for
// Cancel; callers typically pass the tuple's ID). If Run is not
// executing, Add returns NotRunning and schedules nothing.
func (s *Scheduler) Add(id uint64, at time.Time, fire func()) error {
	if !s.IsRunning() {
		return NotRunning
	}
	s.mu.Lock()
	e := &entry{id: id, at: at, fire: fire}
	i := sort.Search(len(s.backlog), func(i int) bool {
		return s.backlog[i].at.After(at)
	})
	s.backlog = append(s.backlog, nil)
	copy(s.backlog[i+1:], s.backlog[i:])
	s.backlog[i] = e
	head := i == 0
	s.mu.Unlock()

	if head {
		s.up <- e
	}
	return nil
}

// Cancel removes a pending entry by id. A miss is tolerated silently.
func (s *Scheduler) Cancel(id uint64) {
	s.mu.Lock()
	for i, e := range s.backlog {
		if e.id == id {
			wasHead := i == 0
			s.backlog = append(s.backlog[:i], s.backlog[i+1:]...)
			if wasHead && len(s.backlog) > 0 {
				next := s.backlog[0]
				s.mu.Unlock()
				select {
				case s.up <- next:
				default:
				}
				return
			}
			s.mu.Unlock()
			return
		}
	}
	s.mu.Unlock()
}
