package tuple

import (
	"sync"
	"sync/atomic"
)

var templateIDs uint64

// Template is a tuple-shaped query. Each field is either a concrete
// value, the wildcard Any, or a PredicateFunc. Destructive marks
// whether a successful match should remove the matched tuple (take)
// or leave it in place (get). ID distinguishes otherwise-equal waiting
// templates so a waiter can be unregistered without disturbing
// siblings with an identical shape and fields.
type Template struct {
	id          uint64
	destructive bool
	fields      map[string]interface{}
	shape       Shape

	wakeOnce sync.Once
	wake     chan struct{}
}

// NewTemplate validates and freezes fields into a Template. A nil
// field value is normalised to the wildcard Any. Construction fails
// with *InvalidTemplateError if fields is empty or nil, or any key is
// not a non-empty string.
func NewTemplate(fields Fields, destructive bool) (*Template, error) {
	if fields == nil {
		return nil, &InvalidTemplateError{Reason: "nil fields"}
	}
	if len(fields) == 0 {
		return nil, &InvalidTemplateError{Reason: "empty fields"}
	}
	frozen := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if k == "" {
			return nil, &InvalidTemplateError{Reason: "empty field name"}
		}
		if v == nil {
			frozen[k] = Any
			continue
		}
		frozen[k] = v
	}
	return &Template{
		id:          atomic.AddUint64(&templateIDs, 1),
		destructive: destructive,
		fields:      frozen,
		shape:       shapeOf(fieldKeys(frozen)),
		wake:        make(chan struct{}),
	}, nil
}

// ID is the per-instance identity used to distinguish otherwise-equal
// waiting templates.
func (p *Template) ID() uint64 { return p.id }

// Shape is the bucketing key: a pure function of the field name set.
func (p *Template) Shape() Shape { return p.shape }

// Destructive reports whether a match should remove the tuple (take)
// or leave it in place (get).
func (p *Template) Destructive() bool { return p.destructive }

// Fields returns the template's raw field mapping (concrete values,
// the Any wildcard, or PredicateFunc values). Callers must not mutate
// the returned map.
func (p *Template) Fields() map[string]interface{} { return p.fields }

// Wake signals the template's condition exactly once. Later calls are
// no-ops, so both a matcher and a concurrent close can call it safely.
func (p *Template) Wake() {
	p.wakeOnce.Do(func() { close(p.wake) })
}

// Done returns the channel that Wake closes. A waiter loop selects on
// this alongside its timeout budget.
func (p *Template) Done() <-chan struct{} { return p.wake }
