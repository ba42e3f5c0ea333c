package semaphore

import (
	"sync"
	"sync/atomic"
	"testing"
)

func BenchmarkAtomic(b *testing.B) {
	var value int32

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			atomic.AddInt32(&value, 1)
		}
	})
}

func BenchmarkSyncMutex(b *testing.B) {
	var (
		value int
		lock  sync.Mutex
	)

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			lock.Lock()
			value++
			lock.Unlock()
		}
	})
}

func BenchmarkBinarySemaphore(b *testing.B) {
	var (
		value int
		m     = Mutex()
	)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			m.Wait()
			value++
			m.Signal()
		}
	})
}

func BenchmarkCloseableBinarySemaphore(b *testing.B) {
	var (
		value int
		m     = CloseableMutex()
	)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			m.Wait()
			value++
			m.Signal()
		}
	})
}

func BenchmarkExecute(b *testing.B) {
	var (
		value int
		m     = Mutex()
	)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			m.Execute(func() {
				value++
			})
		}
	})
}
