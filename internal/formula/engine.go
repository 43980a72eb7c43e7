// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package formula implements the statutory maintenance formulas used by the
// Syariah Court review tooling: nafkah iddah (monthly) and mutaah (daily).
// Both are pure linear functions of the husband's salary with fixed rounding
// and clamping rules. Every call site, whether a reviewer asking for the
// statutory answer or the validator cross-checking an extracted award, goes
// through the same code path so rounding and clamping can never diverge.
package formula

import (
	"errors"
	"fmt"
	"math"
)

// Award identifies which statutory award a result describes.
type Award string

const (
	AwardNafkahIddah Award = "nafkah_iddah"
	AwardMutaah      Award = "mutaah"
)

// SalaryCap is the monthly salary above which the deterministic formulas no
// longer apply and a case must be routed to manual legal review.
const SalaryCap = 4000.0

// Formula constants. The range bases are offsets applied to the pre-rounding
// linear value: nafkah ranges span -50/+150 around the base constant, mutaah
// ranges span -1/+2.
const (
	nafkahRate      = 0.14
	nafkahBase      = 47.0
	nafkahLowerBase = nafkahBase - 50
	nafkahUpperBase = nafkahBase + 150

	mutaahRate      = 0.00096
	mutaahBase      = 0.85
	mutaahLowerBase = mutaahBase - 1
	mutaahUpperBase = mutaahBase + 2
)

// ErrInvalidSalary is returned for a negative or non-finite salary. This is
// a caller contract violation, not a data-quality condition, so it is a hard
// failure rather than a flag.
var ErrInvalidSalary = errors.New("formula: salary must be a non-negative finite number")

// Result is the outcome of one formula evaluation. It is a pure function of
// the salary input: the same salary always yields the same Result.
type Result struct {
	Award      Award   `json:"award"`
	Amount     float64 `json:"amount"`
	LowerRange float64 `json:"lower_range"`
	UpperRange float64 `json:"upper_range"`
	OutOfScope bool    `json:"out_of_scope"`
}

// Engine evaluates the statutory formulas. It holds no per-call state and is
// safe for concurrent use; construct one explicitly and pass it by reference.
type Engine struct{}

// NewEngine returns a stateless formula engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Calculate evaluates the requested awards for the given monthly salary and
// returns the results together with a human-readable reasoning trail
// describing each arithmetic step. The trail is surfaced to reviewers and is
// a required output. An empty award list means both awards.
func (e *Engine) Calculate(salary float64, awards ...Award) ([]Result, []string, error) {
	if salary < 0 || math.IsNaN(salary) || math.IsInf(salary, 0) {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidSalary, salary)
	}

	if len(awards) == 0 {
		awards = []Award{AwardNafkahIddah, AwardMutaah}
	}

	var trail []string
	results := make([]Result, 0, len(awards))

	// Threshold rules run before any arithmetic.
	if salary == 0 {
		trail = append(trail, "salary is 0: both awards and all ranges are 0")
		for _, a := range awards {
			results = append(results, Result{Award: a})
		}
		return results, trail, nil
	}
	if salary > SalaryCap {
		trail = append(trail, fmt.Sprintf("salary $%.2f exceeds the $%.2f formula cap: out of scope, route to manual legal review", salary, SalaryCap))
		for _, a := range awards {
			results = append(results, Result{Award: a, OutOfScope: true})
		}
		return results, trail, nil
	}

	trail = append(trail, fmt.Sprintf("salary $%.2f is within the $%.2f formula cap", salary, SalaryCap))

	for _, a := range awards {
		switch a {
		case AwardNafkahIddah:
			r, steps := nafkahIddah(salary)
			results = append(results, r)
			trail = append(trail, steps...)
		case AwardMutaah:
			r, steps := mutaah(salary)
			results = append(results, r)
			trail = append(trail, steps...)
		default:
			return nil, nil, fmt.Errorf("formula: unknown award %q", a)
		}
	}

	return results, trail, nil
}

// ExpectedNafkahIddah returns the raw linear nafkah iddah value for a salary,
// before rounding. The validator's deviation check compares extracted awards
// against this value; it is exported so that check and the engine share one
// definition of the formula.
func ExpectedNafkahIddah(salary float64) float64 {
	return nafkahRate*salary + nafkahBase
}

// ExpectedMutaah returns the raw linear daily mutaah value for a salary,
// before rounding.
func ExpectedMutaah(salary float64) float64 {
	return mutaahRate*salary + mutaahBase
}

func nafkahIddah(salary float64) (Result, []string) {
	raw := ExpectedNafkahIddah(salary)
	amount := clampZero(RoundTo100(raw))
	lower := clampZero(RoundTo100(nafkahRate*salary + nafkahLowerBase))
	upper := RoundTo100(nafkahRate*salary + nafkahUpperBase)

	steps := []string{
		fmt.Sprintf("nafkah iddah: %.2f * %.2f + %.0f = %.2f", nafkahRate, salary, nafkahBase, raw),
		fmt.Sprintf("rounded to the nearest $100: $%.0f per month", amount),
		fmt.Sprintf("range: $%.0f to $%.0f per month", lower, upper),
	}

	return Result{
		Award:      AwardNafkahIddah,
		Amount:     amount,
		LowerRange: lower,
		UpperRange: upper,
	}, steps
}

func mutaah(salary float64) (Result, []string) {
	raw := ExpectedMutaah(salary)
	amount := clampZero(RoundToInt(raw))
	lower := clampZero(RoundToInt(mutaahRate*salary + mutaahLowerBase))
	upper := RoundToInt(mutaahRate*salary + mutaahUpperBase)

	steps := []string{
		fmt.Sprintf("mutaah: %.5f * %.2f + %.2f = %.2f", mutaahRate, salary, mutaahBase, raw),
		fmt.Sprintf("rounded to the nearest dollar: $%.0f per day", amount),
		fmt.Sprintf("range: $%.0f to $%.0f per day", lower, upper),
	}

	return Result{
		Award:      AwardMutaah,
		Amount:     amount,
		LowerRange: lower,
		UpperRange: upper,
	}, steps
}

// RoundTo100 rounds to the nearest multiple of 100. Rounding an
// already-rounded value returns the same value.
func RoundTo100(v float64) float64 {
	return math.Round(v/100) * 100
}

// RoundToInt rounds to the nearest whole number.
func RoundToInt(v float64) float64 {
	return math.Round(v)
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
