// SPDX-License-Identifier: MIT

package scenario

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/diffusionx/process"
)

// Process kinds.
const (
	ProcessBm  = "bm"
	ProcessOu  = "ou"
	ProcessGbm = "gbm"
)

// known parameters and their defaults, per process kind
var processParams = map[string]map[string]float64{
	ProcessBm:  {"start": 0, "D": 1},
	ProcessOu:  {"start": 0, "theta": 1, "sigma": 1},
	ProcessGbm: {"start": 1, "mu": 0, "sigma": 1},
}

// ParamNames returns the parameter names a process kind accepts, sorted.
func ParamNames(kind string) []string {
	names := make([]string, 0, len(processParams[kind]))
	for k := range processParams[kind] {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Provider builds the reference provider the process describes. Missing
// parameters take their defaults; unknown ones are rejected.
func (p Process) Provider() (process.Provider, error) {
	defaults, ok := processParams[p.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: process %q", ErrUnknownKind, p.Kind)
	}
	vals := make(map[string]float64, len(defaults))
	for k, v := range defaults {
		vals[k] = v
	}
	for k, v := range p.Params {
		if _, ok := defaults[k]; !ok {
			return nil, fmt.Errorf("%w: process %s: unknown parameter %q (want one of %v)", ErrInvalid, p.Kind, k, ParamNames(p.Kind))
		}
		vals[k] = v
	}

	var (
		prov process.Provider
		err  error
	)
	switch p.Kind {
	case ProcessBm:
		prov, err = process.NewBm(vals["start"], vals["D"])
	case ProcessOu:
		prov, err = process.NewOu(vals["theta"], vals["sigma"], vals["start"])
	case ProcessGbm:
		prov, err = process.NewGbm(vals["mu"], vals["sigma"], vals["start"])
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return prov, nil
}
