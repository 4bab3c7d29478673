// SPDX-License-Identifier: MIT

package scenario

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/diffusionx/montecarlo"
	"github.com/katalvlaran/diffusionx/process"
)

// Statistic kinds.
const (
	KindMean                        = "mean"
	KindMSD                         = "msd"
	KindRawMoment                   = "raw_moment"
	KindCentralMoment               = "central_moment"
	KindFracRawMoment               = "frac_raw_moment"
	KindFracCentralMoment           = "frac_central_moment"
	KindTAMSD                       = "tamsd"
	KindEATAMSD                     = "eatamsd"
	KindFPT                         = "fpt"
	KindFPTRawMoment                = "fpt_raw_moment"
	KindFPTCentralMoment            = "fpt_central_moment"
	KindOccupationTime              = "occupation_time"
	KindOccupationTimeRawMoment     = "occupation_time_raw_moment"
	KindOccupationTimeCentralMoment = "occupation_time_central_moment"
)

// Statistic is one estimate request. Which fields are required depends on Kind.
type Statistic struct {
	Kind        string    `yaml:"kind" json:"kind"`
	Duration    float64   `yaml:"duration,omitempty" json:"duration,omitempty"`
	MaxDuration float64   `yaml:"max_duration,omitempty" json:"max_duration,omitempty"`
	TimeStep    float64   `yaml:"time_step" json:"time_step"`
	Particles   int       `yaml:"particles,omitempty" json:"particles,omitempty"`
	Order       *float64  `yaml:"order,omitempty" json:"order,omitempty"`
	Delta       float64   `yaml:"delta,omitempty" json:"delta,omitempty"`
	QuadOrder   int       `yaml:"quad_order,omitempty" json:"quad_order,omitempty"`
	Domain      []float64 `yaml:"domain,omitempty" json:"domain,omitempty"`
}

// Outcome is the result of one statistic. OK is false only for first-passage
// kinds when some path never left the domain.
type Outcome struct {
	Value float64
	OK    bool
}

// field requirements per kind
type needs struct {
	duration, maxDuration, particles, order, intOrder, delta, quad, domain bool
}

var requirements = map[string]needs{
	KindMean:                        {duration: true, particles: true},
	KindMSD:                         {duration: true, particles: true},
	KindRawMoment:                   {duration: true, particles: true, order: true, intOrder: true},
	KindCentralMoment:               {duration: true, particles: true, order: true, intOrder: true},
	KindFracRawMoment:               {duration: true, particles: true, order: true},
	KindFracCentralMoment:           {duration: true, particles: true, order: true},
	KindTAMSD:                       {duration: true, delta: true, quad: true},
	KindEATAMSD:                     {duration: true, delta: true, quad: true, particles: true},
	KindFPT:                         {maxDuration: true, domain: true},
	KindFPTRawMoment:                {maxDuration: true, domain: true, particles: true, order: true, intOrder: true},
	KindFPTCentralMoment:            {maxDuration: true, domain: true, particles: true, order: true, intOrder: true},
	KindOccupationTime:              {duration: true, domain: true},
	KindOccupationTimeRawMoment:     {duration: true, domain: true, particles: true, order: true, intOrder: true},
	KindOccupationTimeCentralMoment: {duration: true, domain: true, particles: true, order: true, intOrder: true},
}

// Kinds returns every supported statistic kind.
func Kinds() []string {
	return []string{
		KindMean, KindMSD, KindRawMoment, KindCentralMoment, KindFracRawMoment, KindFracCentralMoment,
		KindTAMSD, KindEATAMSD, KindFPT, KindFPTRawMoment, KindFPTCentralMoment,
		KindOccupationTime, KindOccupationTimeRawMoment, KindOccupationTimeCentralMoment,
	}
}

func (s *Statistic) validate() error {
	n, ok := requirements[s.Kind]
	if !ok {
		return fmt.Errorf("%w: statistic %q", ErrUnknownKind, s.Kind)
	}
	if s.TimeStep <= 0 {
		return errors.New("time_step must be > 0")
	}
	switch {
	case n.duration && s.Duration <= 0:
		return fmt.Errorf("%s requires duration > 0", s.Kind)
	case n.maxDuration && s.MaxDuration <= 0:
		return fmt.Errorf("%s requires max_duration > 0", s.Kind)
	case n.particles && s.Particles <= 0:
		return fmt.Errorf("%s requires particles > 0", s.Kind)
	case n.order && s.Order == nil:
		return fmt.Errorf("%s requires order", s.Kind)
	case n.order && (math.IsNaN(*s.Order) || math.IsInf(*s.Order, 0)):
		return fmt.Errorf("%s requires a finite order, got %g", s.Kind, *s.Order)
	case n.intOrder && *s.Order != math.Trunc(*s.Order):
		return fmt.Errorf("%s requires an integer order, got %g", s.Kind, *s.Order)
	case n.intOrder && (*s.Order < math.MinInt32 || *s.Order > math.MaxInt32):
		return fmt.Errorf("%s requires an order in [%d, %d], got %g", s.Kind, math.MinInt32, math.MaxInt32, *s.Order)
	case n.delta && (s.Delta <= 0 || s.Delta >= s.Duration):
		return fmt.Errorf("%s requires 0 < delta < duration", s.Kind)
	case n.quad && s.QuadOrder < 2:
		return fmt.Errorf("%s requires quad_order ≥ 2", s.Kind)
	case n.domain && (len(s.Domain) != 2 || s.Domain[0] >= s.Domain[1]):
		return fmt.Errorf("%s requires domain [a, b] with a < b", s.Kind)
	}

	return nil
}

// Evaluate runs the statistic on eng for provider p.
func (s *Statistic) Evaluate(ctx context.Context, eng *montecarlo.Engine, p process.Provider) (Outcome, error) {
	var (
		v   float64
		ok  = true
		err error
	)
	switch s.Kind {
	case KindMean:
		v, err = eng.Mean(ctx, p, s.Duration, s.TimeStep, s.Particles)
	case KindMSD:
		v, err = eng.MSD(ctx, p, s.Duration, s.TimeStep, s.Particles)
	case KindRawMoment:
		v, err = eng.RawMoment(ctx, p, s.intOrder(), s.Duration, s.TimeStep, s.Particles)
	case KindCentralMoment:
		v, err = eng.CentralMoment(ctx, p, s.intOrder(), s.Duration, s.TimeStep, s.Particles)
	case KindFracRawMoment:
		v, err = eng.FracRawMoment(ctx, p, *s.Order, s.Duration, s.TimeStep, s.Particles)
	case KindFracCentralMoment:
		v, err = eng.FracCentralMoment(ctx, p, *s.Order, s.Duration, s.TimeStep, s.Particles)
	case KindTAMSD:
		v, err = eng.TAMSD(ctx, p, s.Duration, s.Delta, s.TimeStep, s.QuadOrder)
	case KindEATAMSD:
		v, err = eng.EATAMSD(ctx, p, s.Duration, s.Delta, s.Particles, s.TimeStep, s.QuadOrder)
	case KindFPT:
		v, ok, err = eng.FPT(ctx, p, s.domain(), s.MaxDuration, s.TimeStep)
	case KindFPTRawMoment:
		v, ok, err = eng.FPTRawMoment(ctx, p, s.domain(), s.intOrder(), s.Particles, s.MaxDuration, s.TimeStep)
	case KindFPTCentralMoment:
		v, ok, err = eng.FPTCentralMoment(ctx, p, s.domain(), s.intOrder(), s.Particles, s.MaxDuration, s.TimeStep)
	case KindOccupationTime:
		v, err = eng.OccupationTime(ctx, p, s.domain(), s.Duration, s.TimeStep)
	case KindOccupationTimeRawMoment:
		v, err = eng.OccupationTimeRawMoment(ctx, p, s.domain(), s.intOrder(), s.Particles, s.Duration, s.TimeStep)
	case KindOccupationTimeCentralMoment:
		v, err = eng.OccupationTimeCentralMoment(ctx, p, s.domain(), s.intOrder(), s.Particles, s.Duration, s.TimeStep)
	default:
		return Outcome{}, fmt.Errorf("%w: statistic %q", ErrUnknownKind, s.Kind)
	}
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{Value: v, OK: ok}, nil
}

func (s *Statistic) intOrder() int {
	if s.Order == nil {
		return 0
	}
	return int(*s.Order)
}

func (s *Statistic) domain() montecarlo.Domain {
	if len(s.Domain) != 2 {
		return montecarlo.Domain{}
	}
	return montecarlo.Domain{s.Domain[0], s.Domain[1]}
}
