// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formula

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calcOne(t *testing.T, salary float64, award Award) Result {
	t.Helper()
	e := NewEngine()
	results, trail, err := e.Calculate(salary, award)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NotEmpty(t, trail, "reasoning trail is a required output")
	return results[0]
}

func TestNafkahIddahSalary1000(t *testing.T) {
	// 0.14*1000 + 47 = 187 -> rounds to 200
	r := calcOne(t, 1000, AwardNafkahIddah)
	assert.Equal(t, 200.0, r.Amount)
	assert.Equal(t, 100.0, r.LowerRange)
	assert.Equal(t, 300.0, r.UpperRange)
	assert.False(t, r.OutOfScope)
}

func TestMutaahSalary2000(t *testing.T) {
	// 0.00096*2000 + 0.85 = 2.77 -> rounds to 3
	r := calcOne(t, 2000, AwardMutaah)
	assert.Equal(t, 3.0, r.Amount)
	assert.Equal(t, 2.0, r.LowerRange)
	assert.Equal(t, 5.0, r.UpperRange)
	assert.False(t, r.OutOfScope)
}

func TestZeroSalary(t *testing.T) {
	e := NewEngine()
	results, trail, err := e.Calculate(0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, 0.0, r.Amount, "award %s", r.Award)
		assert.Equal(t, 0.0, r.LowerRange, "award %s", r.Award)
		assert.Equal(t, 0.0, r.UpperRange, "award %s", r.Award)
		assert.False(t, r.OutOfScope, "zero salary is not an error and not out of scope")
	}
	assert.NotEmpty(t, trail)
}

func TestOutOfScopeAboveCap(t *testing.T) {
	for _, salary := range []float64{4000.01, 5000, 12000} {
		results, _, err := NewEngine().Calculate(salary)
		require.NoError(t, err)
		for _, r := range results {
			assert.True(t, r.OutOfScope, "salary %v award %s", salary, r.Award)
			assert.Equal(t, 0.0, r.Amount)
			assert.Equal(t, 0.0, r.LowerRange)
			assert.Equal(t, 0.0, r.UpperRange)
		}
	}
}

func TestSalaryAtCapIsInScope(t *testing.T) {
	r := calcOne(t, 4000, AwardNafkahIddah)
	assert.False(t, r.OutOfScope)
	// 0.14*4000 + 47 = 607 -> 600
	assert.Equal(t, 600.0, r.Amount)
}

func TestClampInvariantAcrossScope(t *testing.T) {
	e := NewEngine()
	for salary := 0.0; salary <= SalaryCap; salary += 50 {
		results, _, err := e.Calculate(salary)
		require.NoError(t, err)
		for _, r := range results {
			assert.GreaterOrEqual(t, r.Amount, 0.0, "salary %v award %s", salary, r.Award)
			assert.GreaterOrEqual(t, r.LowerRange, 0.0, "salary %v award %s", salary, r.Award)
			assert.LessOrEqual(t, r.LowerRange, r.UpperRange, "salary %v award %s", salary, r.Award)
		}
	}
}

func TestLowerRangeClampedAtLowSalary(t *testing.T) {
	// 0.14*100 - 3 = 11 -> rounds to 0; never negative
	r := calcOne(t, 100, AwardNafkahIddah)
	assert.Equal(t, 0.0, r.LowerRange)
}

func TestInvalidSalary(t *testing.T) {
	e := NewEngine()
	for _, salary := range []float64{-1, -0.01, math.NaN(), math.Inf(1)} {
		_, _, err := e.Calculate(salary)
		require.Error(t, err, "salary %v", salary)
		assert.ErrorIs(t, err, ErrInvalidSalary)
	}
}

func TestUnknownAward(t *testing.T) {
	_, _, err := NewEngine().Calculate(1000, Award("alimony"))
	assert.Error(t, err)
}

func TestDefaultAwardsAreBoth(t *testing.T) {
	results, _, err := NewEngine().Calculate(1500)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, AwardNafkahIddah, results[0].Award)
	assert.Equal(t, AwardMutaah, results[1].Award)
}

func TestRoundTo100Idempotent(t *testing.T) {
	for _, v := range []float64{0, 100, 200, 1500, 187, 249.99} {
		once := RoundTo100(v)
		assert.Equal(t, once, RoundTo100(once), "input %v", v)
	}
}

func TestReferentialTransparency(t *testing.T) {
	e := NewEngine()
	a, _, err := e.Calculate(2750)
	require.NoError(t, err)
	b, _, err := e.Calculate(2750)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestExpectedNafkahIddahRawValue(t *testing.T) {
	// Raw linear value used by the validator deviation check.
	assert.InDelta(t, 747.0, ExpectedNafkahIddah(5000), 1e-9)
	assert.InDelta(t, 187.0, ExpectedNafkahIddah(1000), 1e-9)
}
