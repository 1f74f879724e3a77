package inject

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"

	"github.com/t50io/t50/internal/metrics"
	"github.com/t50io/t50/internal/packet"
)

// turboPriority is the nice-like value both turbo workers request; a
// highly favourable scheduling class keeps the two interleaved streams
// roughly synchronised on the wire (§4.9, §5).
const turboPriority = -15

// worker runs one strictly sequential injection loop (§4.8, §5). Every
// field below is private to the worker: the buffer, the PRNG, the
// rotation cursor, and a value copy of cfg that only the worker's own
// iterations mutate. The raw socket is the one thing two workers share,
// by design (§5 "shared state").
type worker struct {
	id     string
	cfg    packet.Config
	src    *packet.Source
	buf    *packet.Buffer
	cidr   packet.CIDR
	mixed  bool
	fixed  packet.Module
	cursor int
	boost  bool
	coll   *metrics.Collector // nil disables metrics
}

func newWorker(id string, cfg *packet.Config, cidr packet.CIDR, mixed bool, fixed packet.Module, seed uint64, boost bool, coll *metrics.Collector) *worker {
	return &worker{
		id:    id,
		cfg:   *cfg, // per-worker copy: only this worker mutates IP.DstAddr/Protocol from here on
		src:   packet.NewSource(seed),
		buf:   packet.NewBuffer(2048),
		cidr:  cidr,
		mixed: mixed,
		fixed: fixed,
		boost: boost,
		coll:  coll,
	}
}

// run drives the worker's loop to completion: count datagrams if flood is
// false, forever (until ctx is cancelled) if flood is true. It returns the
// number of datagrams actually sent and the first send failure, if any
// (§4.8 step 3 "any send failure aborts the worker").
func (w *worker) run(ctx context.Context, sock sender, count int32, flood bool) (int32, error) {
	if w.boost {
		if err := raisePriority(); err != nil {
			return 0, fmt.Errorf("worker %s: raise priority: %w", w.id, err)
		}
	}

	var sent int32
	for flood || sent < count {
		select {
		case <-ctx.Done():
			return sent, nil
		default:
		}

		mod := w.nextModule()

		daddr := w.cidr.Pick(w.src)
		w.cfg.IP.DstAddr = daddr
		w.cfg.IP.Protocol = mod.Protocol

		n := mod.Build(w.buf, &w.cfg, w.src)

		if err := sock.SendTo(w.buf.Bytes()[:n], daddr); err != nil {
			if w.coll != nil {
				w.coll.IncSendErrors(w.id, mod.Name)
			}
			return sent, fmt.Errorf("worker %s: %w", w.id, err)
		}
		if w.coll != nil {
			w.coll.IncPacketsSent(w.id, mod.Name)
		}
		sent++
	}
	return sent, nil
}

// nextModule picks the builder for this iteration: the single configured
// module, or the next entry in rotation order when in mixed/T50 mode
// (§4.7).
func (w *worker) nextModule() packet.Module {
	if !w.mixed {
		return w.fixed
	}
	mod := packet.ModuleAt(w.cursor)
	w.cursor++
	return mod
}

// raisePriority pins the calling goroutine to its OS thread and lowers
// its niceness to turboPriority. Go has no process fork, so "both workers
// raise priority" (§4.9) is approximated per-thread via PRIO_PROCESS
// against this thread's own tid, which Linux honours as a per-thread nice
// value.
func raisePriority() error {
	runtime.LockOSThread()
	if err := unix.Setpriority(unix.PRIO_PROCESS, unix.Gettid(), turboPriority); err != nil {
		return fmt.Errorf("setpriority: %w", err)
	}
	return nil
}
