package editor

import (
	"sort"
	"sync"
	"time"
)

// debouncer 按 key 合并短时间内的多次提交，只执行静默期结束时的最后一次。
// 所有调用在 exec 下串行执行，flush 返回时不会有仍在执行的调用。
type debouncer struct {
	delay time.Duration

	exec sync.Mutex

	mu      sync.Mutex
	seq     uint64
	pending map[string]*pendingCall
}

type pendingCall struct {
	seq   uint64
	fn    func()
	timer *time.Timer
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		pending: make(map[string]*pendingCall),
	}
}

// submit 替换 key 上尚未执行的调用，并重新计时
func (d *debouncer) submit(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.pending[key]; ok {
		prev.timer.Stop()
	}
	d.seq++
	call := &pendingCall{seq: d.seq, fn: fn}
	seq := call.seq
	call.timer = time.AfterFunc(d.delay, func() {
		d.fire(key, seq)
	})
	d.pending[key] = call
}

func (d *debouncer) fire(key string, seq uint64) {
	d.exec.Lock()
	defer d.exec.Unlock()

	d.mu.Lock()
	call, ok := d.pending[key]
	if !ok || call.seq != seq {
		// 已被新的提交替换或已被 flush
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.mu.Unlock()

	call.fn()
}

// flush 等待正在执行的调用结束，再按提交顺序执行所有待执行调用
func (d *debouncer) flush() int {
	d.exec.Lock()
	defer d.exec.Unlock()

	d.mu.Lock()
	calls := make([]*pendingCall, 0, len(d.pending))
	for key, call := range d.pending {
		call.timer.Stop()
		calls = append(calls, call)
		delete(d.pending, key)
	}
	d.mu.Unlock()

	sort.Slice(calls, func(i, j int) bool { return calls[i].seq < calls[j].seq })
	for _, call := range calls {
		call.fn()
	}
	return len(calls)
}

// pendingCount 尚未执行的调用数
func (d *debouncer) pendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}
