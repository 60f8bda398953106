package packing_test

import (
	"testing"

	"freight/internal/core/domain/model/catalog"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/packing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unit(id string, grams, volume float64, fragile, nicotine bool) packing.Unit {
	return packing.Unit{
		ProductID:   kernel.ProductID(id),
		ProductName: id,
		SKU:         "SKU-" + id,
		WeightGrams: grams,
		VolumeCm3:   volume,
		Fragile:     fragile,
		Nicotine:    nicotine,
	}
}

func satchel(cap int, price string) catalog.Container {
	return catalog.Container{
		Code:           "satchel",
		CarrierCode:    "nzpost",
		LengthMM:       300,
		WidthMM:        200,
		HeightMM:       100,
		MaxWeightGrams: cap,
		Price:          decimal.RequireFromString(price),
		Currency:       "NZD",
		Kind:           catalog.Dynamic,
	}
}

func TestBox_Check(t *testing.T) {
	opts := packing.DefaultOptions()

	t.Run("weight_headroom_uses_margin", func(t *testing.T) {
		box := packing.NewBox(1, catalog.MediumTemplate())
		box.Place(unit("a", 4000, 0, false, false))

		assert.Equal(t, packing.Accepted, box.Check(unit("b", 200, 0, false, false), opts))
		assert.Equal(t, packing.RejectedByWeight, box.Check(unit("c", 251, 0, false, false), opts))
	})

	t.Run("volume_headroom_uses_margin", func(t *testing.T) {
		box := packing.NewBox(1, catalog.MediumTemplate())
		box.Place(unit("a", 10, 7000, false, false))

		assert.Equal(t, packing.RejectedByVolume, box.Check(unit("b", 10, 700, false, false), opts))
		assert.Equal(t, packing.Accepted, box.Check(unit("c", 10, 0, false, false), opts))
	})

	t.Run("nicotine_classes_never_mix", func(t *testing.T) {
		nic := packing.NewBox(1, catalog.MediumTemplate())
		nic.Place(unit("salt", 30, 10, false, true))
		plain := packing.NewBox(2, catalog.MediumTemplate())
		plain.Place(unit("coil", 20, 10, false, false))

		assert.Equal(t, packing.RejectedByNicotine, nic.Check(unit("coil", 20, 10, false, false), opts))
		assert.Equal(t, packing.RejectedByNicotine, plain.Check(unit("salt", 30, 10, false, true), opts))
		assert.Equal(t, packing.Accepted, nic.Check(unit("salt2", 30, 10, false, true), opts))
	})

	t.Run("fragile_box_stays_under_ceiling", func(t *testing.T) {
		large := catalog.StaticLadder()[2]
		box := packing.NewBox(1, large)
		box.Place(unit("glass", 4900, 0, true, false))

		assert.Equal(t, packing.RejectedByFragile, box.Check(unit("tank", 200, 0, false, false), opts))
		assert.Equal(t, packing.Accepted, box.Check(unit("tank", 100, 0, false, false), opts))
	})

	t.Run("fragile_unit_rejects_heavy_box", func(t *testing.T) {
		large := catalog.StaticLadder()[2]
		box := packing.NewBox(1, large)
		box.Place(unit("device", 6000, 0, false, false))

		assert.Equal(t, packing.RejectedByFragile, box.Check(unit("glass", 10, 0, true, false), opts))
	})
}

func TestBox_PlaceAggregates(t *testing.T) {
	box := packing.NewBox(1, catalog.MediumTemplate())

	box.Place(unit("a", 100, 20, false, false))
	box.Place(unit("b", 50, 10, true, false))
	box.Place(unit("a", 100, 20, false, false))

	assert.InDelta(t, 250.0, box.WeightGrams(), 1e-9)
	assert.InDelta(t, 50.0, box.VolumeCm3(), 1e-9)
	assert.Equal(t, 3, box.ItemCount())
	assert.True(t, box.ContainsFragile())
	assert.True(t, box.ContainsNonNicotine())
	assert.False(t, box.ContainsNicotine())
	assert.Equal(t, []packing.ProductQuantity{
		{ProductID: "a", Name: "a", SKU: "SKU-a", Quantity: 2},
		{ProductID: "b", Name: "b", SKU: "SKU-b", Quantity: 1},
	}, box.Products())
}

func TestBox_Absorb(t *testing.T) {
	first := packing.NewBox(1, satchel(1000, "5.00"))
	first.Place(unit("a", 300, 0, false, false))
	second := packing.NewBox(2, satchel(1000, "5.00"))
	second.Place(unit("a", 400, 0, false, false))
	target := satchel(2000, "5.00")

	first.Absorb(second, target)

	assert.InDelta(t, 700.0, first.WeightGrams(), 1e-9)
	assert.Equal(t, 2000, first.Container().MaxWeightGrams)
	require.Len(t, first.Products(), 1)
	assert.Equal(t, 2, first.Products()[0].Quantity)
}

func TestBox_CanMergeWith(t *testing.T) {
	opts := packing.DefaultOptions()
	nic := packing.NewBox(1, catalog.MediumTemplate())
	nic.Place(unit("salt", 30, 0, false, true))
	plain := packing.NewBox(2, catalog.MediumTemplate())
	plain.Place(unit("coil", 20, 0, false, false))
	fragile := packing.NewBox(3, catalog.MediumTemplate())
	fragile.Place(unit("glass", 3000, 0, true, false))
	heavy := packing.NewBox(4, catalog.MediumTemplate())
	heavy.Place(unit("device", 2500, 0, false, false))

	assert.False(t, nic.CanMergeWith(plain, opts))
	assert.False(t, fragile.CanMergeWith(heavy, opts))
	assert.True(t, plain.CanMergeWith(heavy, opts))
}

func TestBox_EstimatedCost(t *testing.T) {
	static := packing.NewBox(1, catalog.MediumTemplate())
	_, ok := static.EstimatedCost()
	assert.False(t, ok)

	priced := packing.NewBox(2, satchel(2000, "5.00"))
	cost, ok := priced.EstimatedCost()
	assert.True(t, ok)
	assert.True(t, cost.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "nzpost", priced.SuggestedCarrier())
}

func TestBox_Utilization(t *testing.T) {
	box := packing.NewBox(1, satchel(2000, "5.00"))
	box.Place(unit("a", 700, 1500, false, false))

	u := box.Utilization()

	assert.InDelta(t, 35.0, u.WeightPercent, 1e-9)
	assert.InDelta(t, 25.0, u.VolumePercent, 1e-9)
	assert.InDelta(t, 30.0, u.EfficiencyScore, 1e-9)
}

func TestBox_CloneIsIndependent(t *testing.T) {
	box := packing.NewBox(1, catalog.MediumTemplate())
	box.Place(unit("a", 100, 0, false, false))

	cp := box.Clone()
	cp.Place(unit("b", 100, 0, false, false))

	assert.Equal(t, 1, box.ItemCount())
	assert.Equal(t, 2, cp.ItemCount())
	assert.Len(t, box.Products(), 1)
}
