package http

import (
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/catalog"
	"freight/internal/core/domain/model/packing"
	"freight/internal/core/domain/model/weight"

	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PlanRequest is the optional body of the packing-plan endpoint.
type PlanRequest struct {
	SafetyMargin *float64 `json:"safety_margin"`
}

// ResolveRequest is the body of the weight resolution endpoint.
type ResolveRequest struct {
	ProductIDs []string `json:"product_ids"`
}

type WeightsView struct {
	Resolutions []weight.Resolution       `json:"resolutions"`
	Summary     map[weight.Source]int     `json:"summary"`
	Warnings    []weight.LowWeightWarning `json:"low_weight_warnings"`
}

type ProductView struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	SKU       string `json:"sku,omitempty"`
	Quantity  int    `json:"quantity"`
}

type UtilizationView struct {
	WeightPercent   float64 `json:"weight_percent"`
	VolumePercent   float64 `json:"volume_percent"`
	EfficiencyScore float64 `json:"efficiency_score"`
}

type BoxView struct {
	Number           int              `json:"box_number"`
	ContainerCode    string           `json:"container_code"`
	ContainerName    string           `json:"container_name"`
	ContainerKind    catalog.Kind     `json:"container_kind"`
	SuggestedCarrier string           `json:"suggested_carrier,omitempty"`
	WeightGrams      float64          `json:"weight_g"`
	VolumeCm3        float64          `json:"volume_cm3"`
	ItemCount        int              `json:"item_count"`
	EstimatedCost    *decimal.Decimal `json:"estimated_cost"`
	Currency         string           `json:"currency,omitempty"`
	Nicotine         bool             `json:"contains_nicotine"`
	Fragile          bool             `json:"contains_fragile"`
	Oversize         bool             `json:"oversize"`
	Utilization      UtilizationView  `json:"utilization"`
	Products         []ProductView    `json:"products"`
}

type AllocationView struct {
	Strategy       string    `json:"strategy"`
	TotalItems     int       `json:"total_items"`
	TotalWeightKg  float64   `json:"total_weight_kg"`
	TotalVolumeCm3 float64   `json:"total_volume_cm3"`
	FallbackEvents int       `json:"fallback_events"`
	Notes          []string  `json:"notes"`
	Boxes          []BoxView `json:"boxes"`
}

type CostSummaryView struct {
	OriginalCost  *decimal.Decimal `json:"original_cost"`
	OptimizedCost *decimal.Decimal `json:"optimized_cost"`
	Savings       *decimal.Decimal `json:"savings"`
	Currency      string           `json:"currency,omitempty"`
	Merges        int              `json:"merges"`
	Downsizes     int              `json:"downsizes"`
}

type OptimizationView struct {
	Boxes   []BoxView       `json:"boxes"`
	Summary CostSummaryView `json:"summary"`
}

type RejectionView struct {
	CarrierCode   string `json:"carrier_code"`
	ContainerCode string `json:"container_code"`
	Reason        string `json:"reason"`
}

type CatalogView struct {
	Size       int             `json:"size"`
	Rejections []RejectionView `json:"rejections"`
}

// PlanView is the packing plan of one transfer.
type PlanView struct {
	TransferID   string           `json:"transfer_id"`
	OutletFrom   string           `json:"outlet_from"`
	OutletTo     string           `json:"outlet_to"`
	Weights      WeightsView      `json:"weights"`
	Allocation   AllocationView   `json:"allocation"`
	Optimization OptimizationView `json:"optimization"`
	Catalog      CatalogView      `json:"catalog"`
}

func toPlanView(plan queries.PlanTransferPackingQueryResponse) PlanView {
	rejections := make([]RejectionView, 0, len(plan.CatalogRejections))
	for _, r := range plan.CatalogRejections {
		rejections = append(rejections, RejectionView{
			CarrierCode:   r.CarrierCode,
			ContainerCode: r.ContainerCode,
			Reason:        r.Reason,
		})
	}

	return PlanView{
		TransferID: plan.TransferID.String(),
		OutletFrom: plan.OutletFrom,
		OutletTo:   plan.OutletTo,
		Weights: WeightsView{
			Resolutions: plan.Weights.Sorted(),
			Summary:     plan.Weights.Summary(),
			Warnings:    nonNilWarnings(plan.Weights.Warnings),
		},
		Allocation: AllocationView{
			Strategy:       plan.Allocation.Strategy,
			TotalItems:     plan.Allocation.TotalItems,
			TotalWeightKg:  plan.Allocation.TotalWeightKg,
			TotalVolumeCm3: plan.Allocation.TotalVolumeCm3,
			FallbackEvents: plan.Allocation.FallbackEvents,
			Notes:          plan.Allocation.Notes,
			Boxes:          toBoxViews(plan.Allocation.Boxes),
		},
		Optimization: OptimizationView{
			Boxes: toBoxViews(plan.Optimization.Boxes),
			Summary: CostSummaryView{
				OriginalCost:  plan.Optimization.Summary.OriginalCost,
				OptimizedCost: plan.Optimization.Summary.OptimizedCost,
				Savings:       plan.Optimization.Summary.Savings,
				Currency:      plan.Optimization.Summary.Currency,
				Merges:        plan.Optimization.Summary.Merges,
				Downsizes:     plan.Optimization.Summary.Downsizes,
			},
		},
		Catalog: CatalogView{
			Size:       plan.CatalogSize,
			Rejections: rejections,
		},
	}
}

func toBoxViews(boxes []*packing.Box) []BoxView {
	views := make([]BoxView, 0, len(boxes))
	for _, b := range boxes {
		views = append(views, toBoxView(b))
	}
	return views
}

func toBoxView(b *packing.Box) BoxView {
	container := b.Container()

	var cost *decimal.Decimal
	if c, ok := b.EstimatedCost(); ok {
		cost = &c
	}

	products := make([]ProductView, 0)
	for _, p := range b.Products() {
		products = append(products, ProductView{
			ProductID: p.ProductID.String(),
			Name:      p.Name,
			SKU:       p.SKU,
			Quantity:  p.Quantity,
		})
	}

	u := b.Utilization()
	return BoxView{
		Number:           b.Number(),
		ContainerCode:    container.Code,
		ContainerName:    container.Name,
		ContainerKind:    container.Kind,
		SuggestedCarrier: b.SuggestedCarrier(),
		WeightGrams:      b.WeightGrams(),
		VolumeCm3:        b.VolumeCm3(),
		ItemCount:        b.ItemCount(),
		EstimatedCost:    cost,
		Currency:         b.Currency(),
		Nicotine:         b.ContainsNicotine(),
		Fragile:          b.ContainsFragile(),
		Oversize:         b.IsOversize(),
		Utilization: UtilizationView{
			WeightPercent:   u.WeightPercent,
			VolumePercent:   u.VolumePercent,
			EfficiencyScore: u.EfficiencyScore,
		},
		Products: products,
	}
}

func toWeightsView(resp queries.ResolveWeightsQueryResponse) WeightsView {
	resolutions := resp.Resolutions
	if resolutions == nil {
		resolutions = make([]weight.Resolution, 0)
	}
	return WeightsView{
		Resolutions: resolutions,
		Summary:     resp.Summary,
		Warnings:    nonNilWarnings(resp.Warnings),
	}
}

func nonNilWarnings(w []weight.LowWeightWarning) []weight.LowWeightWarning {
	if w == nil {
		return make([]weight.LowWeightWarning, 0)
	}
	return w
}
