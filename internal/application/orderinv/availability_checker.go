package orderinv

import (
	"context"
)

// AvailabilityChecker verifies an order's requirements against current stock.
// The check is advisory; the authoritative guard is the conditional update
// applied at deduction time.
type AvailabilityChecker struct {
	calculator *RequirementCalculator
}

// NewAvailabilityChecker creates a new AvailabilityChecker
func NewAvailabilityChecker(calculator *RequirementCalculator) *AvailabilityChecker {
	return &AvailabilityChecker{calculator: calculator}
}

// CheckOrder computes the order's requirements and reports which products
// cannot cover them. An order with no tracked ingredients is available.
func (c *AvailabilityChecker) CheckOrder(ctx context.Context, lines []OrderLine) (*AvailabilityResult, error) {
	requirements, err := c.calculator.ComputeOrderRequirement(ctx, lines)
	if err != nil {
		return nil, err
	}
	return EvaluateRequirements(requirements), nil
}

// EvaluateRequirements classifies already-computed requirements against the
// stock levels captured in them.
func EvaluateRequirements(requirements []ProductRequirement) *AvailabilityResult {
	result := &AvailabilityResult{
		Available:         true,
		Requirements:      requirements,
		InsufficientItems: []InsufficientItem{},
	}

	for _, req := range requirements {
		if req.CurrentQuantity.GreaterThanOrEqual(req.RequiredQuantity) {
			continue
		}
		result.Available = false
		result.InsufficientItems = append(result.InsufficientItems, InsufficientItem{
			ProductID:        req.ProductID,
			ProductName:      req.ProductName,
			UnitOfMeasure:    req.UnitOfMeasure,
			RequiredQuantity: req.RequiredQuantity,
			CurrentQuantity:  req.CurrentQuantity,
			Shortage:         req.RequiredQuantity.Sub(req.CurrentQuantity),
		})
	}
	return result
}
