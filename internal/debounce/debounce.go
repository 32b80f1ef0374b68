// Package debounce 提供可取消的延迟执行：连续调度时只有最后一次会在静默期结束后执行。
package debounce

import (
	"sync"
	"time"
)

// Timer 是 Clock 返回的定时器句柄。
type Timer interface {
	Stop() bool
}

// Clock 抽象时间源，便于测试中手动推进。
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// RealClock 使用标准库定时器。
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

func (RealClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Debouncer 在最后一次 Schedule 之后等待 delay 再执行；被取代的调度永远不会执行。
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	clock   Clock
	timer   Timer
	pending func()
	seq     uint64
}

// New 创建 Debouncer；clock 为 nil 时使用 RealClock。
func New(delay time.Duration, clock Clock) *Debouncer {
	if clock == nil {
		clock = RealClock{}
	}
	return &Debouncer{delay: delay, clock: clock}
}

// Delay 返回静默期长度。
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Schedule 取消尚未触发的调度，并在 delay 之后执行 fn。
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.seq++
	seq := d.seq
	d.pending = fn
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(seq) })
}

// Cancel 取消尚未触发的调度，返回是否确有调度被取消。
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending == nil {
		return false
	}
	d.stopLocked()
	d.seq++
	d.pending = nil
	return true
}

// Pending 判断是否存在等待触发的调度。
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Flush 立即执行等待中的调度（在调用方 goroutine 中），返回是否执行。
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	fn := d.pending
	if fn == nil {
		d.mu.Unlock()
		return false
	}
	d.stopLocked()
	d.seq++
	d.pending = nil
	d.mu.Unlock()

	fn()
	return true
}

func (d *Debouncer) fire(seq uint64) {
	d.mu.Lock()
	if seq != d.seq || d.pending == nil {
		d.mu.Unlock()
		return
	}
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	fn()
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
