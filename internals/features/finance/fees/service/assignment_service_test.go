package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	m "schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/features/finance/money"
)

func TestComputeStructureTotalExplicitWins(t *testing.T) {
	explicit := money.FromInt(12000)
	s := &m.FeeStructure{
		FeeStructureTotalAmount: &explicit,
		Heads: []m.FeeStructureHead{
			{FeeStructureHeadAmount: money.FromInt(5000)},
			{FeeStructureHeadAmount: money.FromInt(3000)},
		},
	}
	// explicit total wins even when it disagrees with the head sum
	assert.True(t, ComputeStructureTotal(s).Equal(explicit))
}

func TestComputeStructureTotalFromHeads(t *testing.T) {
	s := &m.FeeStructure{
		Heads: []m.FeeStructureHead{
			{FeeStructureHeadAmount: money.FromInt(5000)},
			{FeeStructureHeadAmount: money.FromInt(3000)},
			{FeeStructureHeadAmount: money.FromInt(1500)},
		},
	}
	assert.True(t, ComputeStructureTotal(s).Equal(money.FromInt(9500)))
}

func TestComputeStructureTotalZeroExplicitFallsBack(t *testing.T) {
	zero := money.Zero
	s := &m.FeeStructure{
		FeeStructureTotalAmount: &zero,
		Heads: []m.FeeStructureHead{
			{FeeStructureHeadAmount: money.FromInt(700)},
		},
	}
	assert.True(t, ComputeStructureTotal(s).Equal(money.FromInt(700)))
}

func TestComputeStructureTotalEmpty(t *testing.T) {
	assert.True(t, ComputeStructureTotal(&m.FeeStructure{}).IsZero())
}
