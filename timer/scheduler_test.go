package timer

import (
	"context"
	"testing"
	"time"
)

func TestSchedulerFires(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)
	<-s.Started()

	fired := make(chan struct{})
	if err := s.Add(1, time.Now().Add(20*time.Millisecond), func() { close(fired) }); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timer never fired")
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)
	<-s.Started()

	fired := make(chan struct{})
	s.Add(1, time.Now().Add(50*time.Millisecond), func() { close(fired) })
	s.Cancel(1)

	select {
	case <-fired:
		t.Fatal("cancelled timer should not have fired")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSchedulerOrdersEarliestFirst(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)
	<-s.Started()

	var order []int
	done := make(chan struct{}, 2)
	s.Add(1, time.Now().Add(60*time.Millisecond), func() { order = append(order, 1); done <- struct{}{} })
	s.Add(2, time.Now().Add(10*time.Millisecond), func() { order = append(order, 2); done <- struct{}{} })

	<-done
	<-done
	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Fatalf("expected earliest-first firing order [2 1], got %v", order)
	}
}
