package leaktest

import (
	"sync"
	"testing"
	"time"
)

func TestCheckNoGoroutineLeak_Success(t *testing.T) {
	CheckNoGoroutineLeak(t, func() {
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			time.Sleep(time.Millisecond)
		}()
		wg.Wait()
	})
}

func TestCheckNoGoroutineLeak_IgnoresPreexisting(t *testing.T) {
	done := make(chan struct{})
	go func() { <-done }()
	defer close(done)

	CheckNoGoroutineLeak(t, func() {})
}

func TestVerifyNone(t *testing.T) {
	VerifyNone(t)
}
