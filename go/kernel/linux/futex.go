package linux

import (
	"sync"

	"golang.org/x/sys/unix"

	co "github.com/lunixbochs/sysemu/go/kernel/common"
)

const (
	FUTEX_WAIT        = 0
	FUTEX_WAKE        = 1
	FUTEX_WAIT_BITSET = 9
	FUTEX_WAKE_BITSET = 10

	FUTEX_PRIVATE_FLAG   = 128
	FUTEX_CLOCK_REALTIME = 256
	FUTEX_CMD_MASK       = ^(FUTEX_PRIVATE_FLAG | FUTEX_CLOCK_REALTIME)

	FUTEX_BITSET_MATCH_ANY = 0xffffffff
)

type futexWaiter struct {
	tid    int
	addr   uint64
	bitset uint32
	woken  bool
}

// futexTable holds the wait queues of one guest. Threads never block the host:
// a waiting thread's trap stays pending until a wake marks its waiter.
type futexTable struct {
	mu       sync.Mutex
	queues   map[uint64][]*futexWaiter
	waiting  map[int]*futexWaiter
	clearTid map[int]uint64
}

func newFutexTable() *futexTable {
	return &futexTable{
		queues:   make(map[uint64][]*futexWaiter),
		waiting:  make(map[int]*futexWaiter),
		clearTid: make(map[int]uint64),
	}
}

// Futex supports WAIT and WAKE with their bitset variants. Timeouts are not modeled.
func (k *LinuxKernel) Futex(c *co.Call, uaddr co.Ptr, op int, val uint64, timeout, uaddr2 co.Ptr, val3 uint64) co.SyscallReturn {
	addr := uint64(uaddr)
	switch op & FUTEX_CMD_MASK {
	case FUTEX_WAIT:
		return k.futex.wait(c, addr, uint32(val), FUTEX_BITSET_MATCH_ANY)
	case FUTEX_WAIT_BITSET:
		if uint32(val3) == 0 {
			return co.Errno(unix.EINVAL)
		}
		return k.futex.wait(c, addr, uint32(val), uint32(val3))
	case FUTEX_WAKE:
		return co.Value(k.futex.wake(addr, int(int32(val)), FUTEX_BITSET_MATCH_ANY))
	case FUTEX_WAKE_BITSET:
		if uint32(val3) == 0 {
			return co.Errno(unix.EINVAL)
		}
		return co.Value(k.futex.wake(addr, int(int32(val)), uint32(val3)))
	default:
		c.Warnf("unsupported futex op %#x", op)
		return co.Errno(unix.ENOSYS)
	}
}

func (f *futexTable) wait(c *co.Call, addr uint64, val, bitset uint32) co.SyscallReturn {
	tid := c.Thread.Tid()
	f.mu.Lock()
	defer f.mu.Unlock()
	if w, ok := f.waiting[tid]; ok {
		if !w.woken {
			return co.Retry()
		}
		delete(f.waiting, tid)
		return co.Value(0)
	}
	word, err := co.NewBuf(c.Process, addr).Uint32()
	if err != nil {
		return co.Errno(unix.EFAULT)
	}
	if word != val {
		return co.Errno(unix.EAGAIN)
	}
	w := &futexWaiter{tid: tid, addr: addr, bitset: bitset}
	f.queues[addr] = append(f.queues[addr], w)
	f.waiting[tid] = w
	return co.Retry()
}

// wake marks up to n waiters on addr in FIFO order and returns how many it marked.
func (f *futexTable) wake(addr uint64, n int, bitset uint32) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.wakeLocked(addr, n, bitset)
}

func (f *futexTable) wakeLocked(addr uint64, n int, bitset uint32) int {
	q := f.queues[addr]
	rest := q[:0]
	woken := 0
	for _, w := range q {
		if woken < n && w.bitset&bitset != 0 {
			w.woken = true
			woken++
		} else {
			rest = append(rest, w)
		}
	}
	if len(rest) == 0 {
		delete(f.queues, addr)
	} else {
		f.queues[addr] = rest
	}
	return woken
}

// drop forgets tid's waiter, woken or not.
func (f *futexTable) drop(tid int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.waiting[tid]
	if !ok {
		return
	}
	delete(f.waiting, tid)
	q := f.queues[w.addr]
	for i, other := range q {
		if other == w {
			q = append(q[:i], q[i+1:]...)
			break
		}
	}
	if len(q) == 0 {
		delete(f.queues, w.addr)
	} else {
		f.queues[w.addr] = q
	}
}

func (f *futexTable) setClearTid(tid int, addr uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if addr == 0 {
		delete(f.clearTid, tid)
	} else {
		f.clearTid[tid] = addr
	}
}

// exitThread zeroes tid's clear_child_tid word and wakes one waiter on it.
func (f *futexTable) exitThread(p co.Process, tid int) {
	f.drop(tid)
	f.mu.Lock()
	defer f.mu.Unlock()
	addr, ok := f.clearTid[tid]
	if !ok {
		return
	}
	delete(f.clearTid, tid)
	tmp := make([]byte, 4)
	p.ByteOrder().PutUint32(tmp, 0)
	if err := co.NewBuf(p, addr).Write(tmp); err != nil {
		return
	}
	f.wakeLocked(addr, 1, FUTEX_BITSET_MATCH_ANY)
}

func (f *futexTable) waiters(addr uint64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queues[addr])
}
