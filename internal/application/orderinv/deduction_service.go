package orderinv

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/shared"
)

// InsufficientStockError is returned when a deduction or availability check
// finds products that cannot cover the order.
type InsufficientStockError struct {
	Items []InsufficientItem
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %d product(s)", len(e.Items))
}

// Unwrap allows errors.Is checks against the domain sentinel
func (e *InsufficientStockError) Unwrap() error {
	return shared.ErrInsufficientStock
}

// DeductionService commits order deductions against inventory. Each deduction
// updates product quantities and appends ledger entries inside one database
// transaction, so the books and the stock never diverge.
type DeductionService struct {
	calculator     *RequirementCalculator
	scope          TransactionScope
	productRepo    inventory.ProductRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewDeductionService creates a new DeductionService
func NewDeductionService(
	calculator *RequirementCalculator,
	scope TransactionScope,
	productRepo inventory.ProductRepository,
) *DeductionService {
	return &DeductionService{
		calculator:  calculator,
		scope:       scope,
		productRepo: productRepo,
		logger:      zap.NewNop(),
	}
}

// WithLogger sets the logger used for post-commit warnings
func (s *DeductionService) WithLogger(logger *zap.Logger) *DeductionService {
	s.logger = logger
	return s
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *DeductionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// DeductForOrder deducts the stock an order consumes and records one ledger
// entry per affected product, all within a single transaction.
//
// A given order ID is deducted at most once; repeating the call returns
// ErrAlreadyExists. With SkipAvailabilityCheck set, quantities are allowed to
// go negative; otherwise the update itself refuses to cross zero and the
// whole deduction rolls back.
func (s *DeductionService) DeductForOrder(ctx context.Context, orderID string, lines []OrderLine, opts DeductOptions) (*DeductResult, error) {
	if orderID == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_ID", "Order ID cannot be empty")
	}

	requirements, err := s.calculator.ComputeOrderRequirement(ctx, lines)
	if err != nil {
		return nil, err
	}

	result := &DeductResult{
		OrderID:       orderID,
		Deductions:    requirements,
		LowStock:      []uuid.UUID{},
		TransactionID: []uuid.UUID{},
	}
	if len(requirements) == 0 {
		return result, nil
	}

	if !opts.SkipAvailabilityCheck {
		availability := EvaluateRequirements(requirements)
		if !availability.Available {
			return nil, &InsufficientStockError{Items: availability.InsufficientItems}
		}
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		exists, err := repos.TransactionRepo().ExistsByReference(ctx, inventory.ReferenceTypeOrder, orderID)
		if err != nil {
			return err
		}
		if exists {
			return shared.ErrAlreadyExists
		}

		for _, req := range requirements {
			delta := req.RequiredQuantity.Neg()

			if opts.SkipAvailabilityCheck {
				err = repos.ProductRepo().IncrementQuantity(ctx, req.ProductID, delta)
			} else {
				err = repos.ProductRepo().IncrementQuantityNonNegative(ctx, req.ProductID, delta)
			}
			if errors.Is(err, shared.ErrInsufficientStock) {
				return &InsufficientStockError{Items: []InsufficientItem{{
					ProductID:        req.ProductID,
					ProductName:      req.ProductName,
					UnitOfMeasure:    req.UnitOfMeasure,
					RequiredQuantity: req.RequiredQuantity,
					CurrentQuantity:  req.CurrentQuantity,
					Shortage:         req.RequiredQuantity.Sub(req.CurrentQuantity),
				}}}
			}
			if err != nil {
				return err
			}

			entry, err := inventory.NewInventoryTransaction(
				req.ProductID,
				inventory.TransactionTypeSale,
				delta,
				inventory.ReferenceTypeOrder,
				orderID,
			)
			if err != nil {
				return err
			}
			if err := repos.TransactionRepo().Create(ctx, entry); err != nil {
				return err
			}
			result.TransactionID = append(result.TransactionID, entry.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishDeductionEvents(ctx, orderID, requirements, result)
	return result, nil
}

// BatchAdjust applies manual stock corrections atomically and records each in
// the ledger. The reference ID ties the ledger rows back to the document that
// caused them, such as a delivery note or stocktake sheet; it may be empty.
// Corrections cannot push a quantity below zero.
func (s *DeductionService) BatchAdjust(ctx context.Context, updates []AdjustmentUpdate, referenceID string) ([]AdjustmentResult, error) {
	if len(updates) == 0 {
		return nil, shared.NewDomainError("EMPTY_BATCH", "Adjustment batch cannot be empty")
	}
	for _, u := range updates {
		if u.Type == inventory.TransactionTypeSale {
			return nil, shared.NewDomainError("INVALID_ADJUSTMENT_TYPE", "Sales are recorded through order deduction, not adjustment")
		}
		if !u.Type.IsValid() {
			return nil, shared.NewDomainError("INVALID_ADJUSTMENT_TYPE", fmt.Sprintf("Unknown transaction type: %s", u.Type))
		}
		if u.QuantityChange.IsZero() {
			return nil, shared.NewDomainError("INVALID_QUANTITY_CHANGE", "Quantity change cannot be zero")
		}
	}

	results := make([]AdjustmentResult, 0, len(updates))
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, u := range updates {
			if err := repos.ProductRepo().IncrementQuantityNonNegative(ctx, u.ProductID, u.QuantityChange); err != nil {
				return err
			}

			entry, err := inventory.NewInventoryTransaction(u.ProductID, u.Type, u.QuantityChange, inventory.ReferenceTypeManual, referenceID)
			if err != nil {
				return err
			}
			if u.Notes != "" {
				entry.WithNotes(u.Notes)
			}
			if err := repos.TransactionRepo().Create(ctx, entry); err != nil {
				return err
			}
			results = append(results, AdjustmentResult{
				ProductID:     u.ProductID,
				TransactionID: entry.ID,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Fill in committed quantities and raise threshold events for decrements.
	ids := make([]uuid.UUID, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		// The adjustments are committed; only the reloaded quantities and
		// threshold events are lost.
		s.logger.Warn("failed to reload products after batch adjustment",
			zap.String("reference_id", referenceID),
			zap.Error(err),
		)
		return results, nil
	}
	byID := make(map[uuid.UUID]*inventory.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for i := range results {
		p, ok := byID[results[i].ProductID]
		if !ok {
			continue
		}
		results[i].NewQuantity = p.CurrentQuantity
		if inventory.IsLowStock(p) || inventory.IsOutOfStock(p) {
			s.publish(ctx, inventory.NewStockBelowThresholdEvent(p))
		}
	}
	return results, nil
}

// GetOrderDeductions returns the ledger entries recorded for an order.
func (s *DeductionService) GetOrderDeductions(ctx context.Context, orderID string) ([]inventory.InventoryTransaction, error) {
	if orderID == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_ID", "Order ID cannot be empty")
	}
	var entries []inventory.InventoryTransaction
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		entries, err = repos.TransactionRepo().FindByReference(ctx, inventory.ReferenceTypeOrder, orderID)
		return err
	})
	return entries, err
}

// ReconcileProduct compares a product's current quantity against the sum of
// its ledger entries and returns the drift. A nonzero drift means the stock
// was seeded or edited outside the ledger.
func (s *DeductionService) ReconcileProduct(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	var drift decimal.Decimal
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByID(ctx, productID)
		if err != nil {
			return err
		}
		sum, err := repos.TransactionRepo().SumQuantityChangeByProduct(ctx, productID)
		if err != nil {
			return err
		}
		drift = product.CurrentQuantity.Sub(sum)
		return nil
	})
	return drift, err
}

// publishDeductionEvents reloads the affected products and emits deduction
// and threshold events. Publishing happens after commit; event failures are
// swallowed by the bus and never undo a deduction.
func (s *DeductionService) publishDeductionEvents(ctx context.Context, orderID string, requirements []ProductRequirement, result *DeductResult) {
	ids := make([]uuid.UUID, 0, len(requirements))
	required := make(map[uuid.UUID]decimal.Decimal, len(requirements))
	for _, req := range requirements {
		ids = append(ids, req.ProductID)
		required[req.ProductID] = req.RequiredQuantity
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn("failed to reload products after deduction",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		return
	}
	for i := range products {
		p := &products[i]
		s.publish(ctx, inventory.NewStockDeductedEvent(p, required[p.ID], inventory.ReferenceTypeOrder, orderID))
		if inventory.IsLowStock(p) || inventory.IsOutOfStock(p) {
			result.LowStock = append(result.LowStock, p.ID)
			s.publish(ctx, inventory.NewStockBelowThresholdEvent(p))
		}
	}
}

func (s *DeductionService) publish(ctx context.Context, event shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	_ = s.eventPublisher.Publish(ctx, event)
}
