// Package inject implements the injection loop: destination
// randomisation inside a CIDR block, protocol rotation in mixed mode,
// threshold/flood accounting, and the optional two-worker turbo fan-out
// (§4.8, §4.9).
package inject

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/t50io/t50/internal/metrics"
	"github.com/t50io/t50/internal/packet"
)

// childWaitBudget bounds how long the parent waits for the turbo child
// to finish after its own loop completes (§5: "waits up to five seconds
// for the child... via an alarm-driven wait").
const childWaitBudget = 5 * time.Second

// Result reports how many datagrams each worker sent, for the caller's
// metrics and the concrete-scenario tests in §8.
type Result struct {
	Sent       int32
	ParentSent int32
	ChildSent  int32
	Turbo      bool
}

// Run resolves the CIDR block and module selection from cfg once, then
// drives either a single worker or, when eligible and requested, the
// turbo two-worker split (§4.8, §4.9). seed feeds every worker's PRNG;
// per §5 both turbo workers "seed from wall-clock time at or before
// fork", so the caller passes the same seed to both — an accepted
// statistical weakness, not a bug.
func Run(ctx context.Context, cfg *packet.Config, opts Options, sock sender, seed uint64, coll *metrics.Collector) (Result, error) {
	cidr := packet.NewCIDR(cfg.IP.Bits, cfg.IP.DstAddr)
	mixed := cfg.IP.Protocol == packet.ProtoT50

	var fixed packet.Module
	if !mixed {
		mods := packet.Modules()
		if cfg.IP.ProtoName < 0 || cfg.IP.ProtoName >= len(mods) {
			return Result{}, fmt.Errorf("protocol index %d out of range", cfg.IP.ProtoName)
		}
		fixed = mods[cfg.IP.ProtoName]
	}

	if coll != nil && !opts.Flood {
		coll.SetThresholdRemaining(float64(opts.Threshold))
	}

	if !opts.Turbo || !turboEligible(opts.Threshold, mixed) {
		w := newWorker("main", cfg, cidr, mixed, fixed, seed, false, coll)
		sent, err := w.run(ctx, sock, opts.Threshold, opts.Flood)
		if coll != nil && !opts.Flood {
			coll.SetThresholdRemaining(float64(opts.Threshold - sent))
		}
		return Result{Sent: sent}, err
	}

	return runTurbo(ctx, cfg, cidr, mixed, fixed, opts, sock, seed, coll)
}

// turboEligible reports whether the configured threshold is large enough
// for the split to be worthwhile: more than one packet in single-protocol
// mode, or more than the number of registered modules in mixed mode so
// that every module gets at least one packet per worker (§4.9, §9 open
// question on turbo eligibility rationale).
func turboEligible(threshold int32, mixed bool) bool {
	if mixed {
		return threshold > int32(packet.NumModules())
	}
	return threshold > 1
}

// runTurbo splits the threshold between a parent and a child worker,
// runs both concurrently, and applies the parent's bounded wait for the
// child (§4.9, §5, §8 scenario 4 "turbo split, threshold odd").
func runTurbo(
	ctx context.Context,
	cfg *packet.Config,
	cidr packet.CIDR,
	mixed bool,
	fixed packet.Module,
	opts Options,
	sock sender,
	seed uint64,
	coll *metrics.Collector,
) (Result, error) {
	childCount := opts.Threshold / 2
	parentCount := opts.Threshold - childCount // parent absorbs the odd packet (§4.9)

	childCtx, cancelChild := context.WithCancel(ctx)
	defer cancelChild()

	g, gCtx := errgroup.WithContext(childCtx)
	var childSent int32
	g.Go(func() error {
		w := newWorker("child", cfg, cidr, mixed, fixed, seed, true, coll)
		var err error
		childSent, err = w.run(gCtx, sock, childCount, opts.Flood)
		return err
	})

	parent := newWorker("parent", cfg, cidr, mixed, fixed, seed, true, coll)
	parentSent, parentErr := parent.run(ctx, sock, parentCount, opts.Flood)

	// Parent's own loop is done; give the child up to childWaitBudget to
	// finish before the parent moves on to closing the shared socket
	// (owned by the caller, never by the child — §4.4, §4.9).
	childDone := make(chan error, 1)
	go func() { childDone <- g.Wait() }()

	var childErr error
	select {
	case childErr = <-childDone:
	case <-time.After(childWaitBudget):
		cancelChild()
		childErr = <-childDone
	}

	res := Result{
		Sent:       parentSent + childSent,
		ParentSent: parentSent,
		ChildSent:  childSent,
		Turbo:      true,
	}

	if coll != nil && !opts.Flood {
		coll.SetThresholdRemaining(float64(opts.Threshold - res.Sent))
	}

	if parentErr != nil {
		return res, fmt.Errorf("parent worker: %w", parentErr)
	}
	if childErr != nil {
		return res, fmt.Errorf("child worker: %w", childErr)
	}
	return res, nil
}
