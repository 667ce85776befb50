package clock_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/tactics/internal/game/clock"
)

func TestTimer_Fires(t *testing.T) {
	var called atomic.Int32
	tm := clock.AfterFunc(20*time.Millisecond, func() {
		called.Add(1)
	})
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), called.Load())
	assert.False(t, tm.Stop(), "stopping a fired timer reports false")
}

func TestTimer_ZeroDurationFiresAsynchronously(t *testing.T) {
	done := make(chan struct{})
	clock.AfterFunc(0, func() {
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("zero-duration timer did not fire")
	}
}

func TestTimer_Stop_PreventsCallback(t *testing.T) {
	var called atomic.Int32
	tm := clock.AfterFunc(50*time.Millisecond, func() {
		called.Add(1)
	})
	assert.True(t, tm.Stop())
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(0), called.Load())
}

func TestTimer_StopIdempotent(t *testing.T) {
	tm := clock.AfterFunc(50*time.Millisecond, func() {})
	assert.True(t, tm.Stop())
	assert.False(t, tm.Stop())
	assert.False(t, tm.Stop())

	var nilTimer *clock.Timer
	assert.False(t, nilTimer.Stop())
}

func TestTimer_StopRacingFire_CallbackRunsAtMostOnce(t *testing.T) {
	for i := 0; i < 200; i++ {
		var called atomic.Int32
		tm := clock.AfterFunc(time.Duration(i%3)*time.Microsecond, func() {
			called.Add(1)
		})
		var wg sync.WaitGroup
		var stopped atomic.Bool
		wg.Add(1)
		go func() {
			defer wg.Done()
			stopped.Store(tm.Stop())
		}()
		wg.Wait()
		if stopped.Load() {
			time.Sleep(time.Millisecond)
			assert.Equal(t, int32(0), called.Load())
		} else {
			assert.Eventually(t, func() bool { return called.Load() == 1 }, time.Second, time.Millisecond)
		}
	}
}
