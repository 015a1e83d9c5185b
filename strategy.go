package keccak

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Giulio2002/zk_keccak/log"
	"github.com/Giulio2002/zk_keccak/metrics"
)

var (
	acceleratedCounter = metrics.NewCounter("keccak/adaptive/accelerated")
	committedCounter   = metrics.NewCounter("keccak/adaptive/committed")
	fallbackCounter    = metrics.NewCounter("keccak/adaptive/fallback")
)

// strategy is how a Keccak hasher turns input into a digest.
type strategy interface {
	update(p []byte)
	finalize(out []byte) error
	clone() strategy
}

// direct feeds everything to the sponge.
type direct struct {
	sponge *Sponge[KeccakF]
}

func (d *direct) update(p []byte) { d.sponge.Update(p) }

func (d *direct) finalize(out []byte) error {
	d.sponge.Finalize(out)
	return nil
}

func (d *direct) clone() strategy { return &direct{sponge: d.sponge.Clone()} }

// adaptive is in one of two states. While buffering, sponge is nil and raw
// holds all input so far. Once committed, raw is nil and every byte has gone
// through sponge exactly once. There is no way back.
type adaptive struct {
	raw    []byte
	sponge *Sponge[KeccakF]

	rate      int
	threshold int
	accel     Accelerator
}

func newAdaptive(rate int, cfg Config) *adaptive {
	return &adaptive{
		raw:       []byte{},
		rate:      rate,
		threshold: cfg.threshold(),
		accel:     cfg.Accelerator,
	}
}

func (a *adaptive) committed() bool { return a.sponge != nil }

func (a *adaptive) update(p []byte) {
	if !a.committed() {
		if len(a.raw)+len(p) <= a.threshold {
			a.raw = append(a.raw, p...)
			return
		}
		log.Debug("Keccak input exceeds accelerator threshold, committing to sponge",
			zap.Int("buffered", len(a.raw)), zap.Int("incoming", len(p)), zap.Int("threshold", a.threshold))
		committedCounter.Inc(1)
		a.commit()
	}
	a.sponge.Update(p)
}

// commit flushes the raw buffer into a fresh sponge and drops it.
func (a *adaptive) commit() {
	a.sponge = NewSponge(KeccakF{}, a.rate, keccakDelim)
	a.sponge.Update(a.raw)
	a.raw = nil
}

func (a *adaptive) finalize(out []byte) error {
	if a.committed() {
		a.sponge.Finalize(out)
		return nil
	}
	if !a.accel.Supports(a.rate, keccakDelim, len(out)) {
		log.Debug("Accelerator cannot serve digest, finishing on sponge",
			zap.Int("rate", a.rate), zap.Int("length", len(out)))
		fallbackCounter.Inc(1)
		a.commit()
		a.sponge.Finalize(out)
		return nil
	}
	raw := a.raw
	a.raw = nil
	if err := a.accel.Digest(raw, a.rate, keccakDelim, out); err != nil {
		return errors.Wrap(err, "accelerated keccak digest")
	}
	acceleratedCounter.Inc(1)
	return nil
}

func (a *adaptive) clone() strategy {
	c := *a
	if a.committed() {
		c.sponge = a.sponge.Clone()
	} else {
		c.raw = append([]byte{}, a.raw...)
	}
	return &c
}
