package sale

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/stock"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// CompleteSaleUseCase completa ventas multi-ítem: valida disponibilidad
// de cada línea, persiste la venta y descuenta el stock de cada producto
// vía el motor de stock, todo dentro de una sola transacción.
type CompleteSaleUseCase struct {
	txRunner TxRunner
	ledger   *stock.LedgerEngine
	saleRepo repository.SaleRepository // lecturas fuera de transacción
	receipts ReceiptGenerator
}

// NewCompleteSaleUseCase construye el caso de uso.
func NewCompleteSaleUseCase(
	txRunner TxRunner,
	ledger *stock.LedgerEngine,
	saleRepo repository.SaleRepository,
	receipts ReceiptGenerator,
) *CompleteSaleUseCase {
	return &CompleteSaleUseCase{
		txRunner: txRunner,
		ledger:   ledger,
		saleRepo: saleRepo,
		receipts: receipts,
	}
}

// CompleteSale valida, persiste y descuenta:
//  1. Pase de validación: cada línea referencia un producto existente y
//     activo, y el stock cubre la cantidad acumulada por producto (una
//     venta puede repetir un producto en varias líneas). Falla
//     cualquiera → no se muta nada.
//  2. Se persiste la venta (inmutable, con snapshot de nombre y precio).
//  3. Por cada línea se registra una salida en el libro de stock con
//     descripción que referencia la venta.
//
// Los tres pasos corren en UNA transacción: una falla en el paso 3
// revierte también la venta. El total lo recalcula el servidor desde
// las líneas; un total del caller que no coincida se rechaza.
func (uc *CompleteSaleUseCase) CompleteSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if userID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	computed := decimal.Zero
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 || !item.UnitPrice.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		computed = computed.Add(decimal.NewFromInt(item.Quantity).Mul(item.UnitPrice))
	}
	if !computed.GreaterThan(decimal.Zero) || !in.Total.Equal(computed) {
		return nil, fmt.Errorf("el total no coincide con la suma de las líneas: %w", domain.ErrInvalidInput)
	}

	now := time.Now()
	var sale *entity.Sale

	err := uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
		saleRepo repository.SaleRepository,
	) error {
		// 1) Validación de todas las líneas antes de cualquier mutación.
		// GetForUpdate bloquea cada producto hasta el commit, así otro
		// proceso no puede descontar el stock validado en el medio.
		// Las cantidades se acumulan por producto: si la venta repite un
		// producto en varias líneas, el stock debe cubrir la SUMA — así
		// el rechazo ocurre acá y nunca a mitad del paso 3.
		products := make(map[string]*entity.Product, len(in.Items))
		requested := make(map[string]int64, len(in.Items))
		for _, item := range in.Items {
			product, ok := products[item.ProductID]
			if !ok {
				var err error
				product, err = productRepo.GetForUpdate(item.ProductID)
				if err != nil {
					return err
				}
				if product == nil {
					return &domain.NotFoundError{Resource: "producto", ID: item.ProductID}
				}
				if !product.Active {
					return fmt.Errorf("producto inactivo %s: %w", product.ID, domain.ErrInvalidInput)
				}
				products[item.ProductID] = product
			}
			requested[item.ProductID] += item.Quantity
			if product.Stock < requested[item.ProductID] {
				return &domain.InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Requested:   requested[item.ProductID],
					Available:   product.Stock,
				}
			}
		}

		// 2) Persistir la venta.
		items := make([]entity.SaleItem, 0, len(in.Items))
		for _, item := range in.Items {
			items = append(items, entity.SaleItem{
				ProductID:   item.ProductID,
				ProductName: products[item.ProductID].Name,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
			})
		}
		sale = &entity.Sale{
			ID:            uuid.New().String(),
			UserID:        userID,
			PaymentMethod: in.PaymentMethod,
			Items:         items,
			Total:         computed,
			CreatedAt:     now,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}

		// 3) Una salida del libro de stock por línea, con referencia a la
		// venta para trazabilidad del historial.
		for _, item := range sale.Items {
			description := fmt.Sprintf("Venta completada - Producto: %s (ID: %s) - Venta ID: %s",
				item.ProductName, item.ProductID, sale.ID)
			if _, err := uc.ledger.RecordExitInTx(
				productRepo, movementRepo,
				item.ProductID, item.Quantity, description, now,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toSaleResponse(sale), nil
}

// GetByID obtiene una venta por ID.
func (uc *CompleteSaleUseCase) GetByID(id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, &domain.NotFoundError{Resource: "venta", ID: id}
	}
	return toSaleResponse(sale), nil
}

// List lista ventas, más reciente primero.
func (uc *CompleteSaleUseCase) List(limit, offset int) (*dto.SaleListResponse, error) {
	sales, err := uc.saleRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.SaleListResponse{
		Sales:  make([]dto.SaleResponse, 0, len(sales)),
		Limit:  limit,
		Offset: offset,
	}
	for _, s := range sales {
		out.Sales = append(out.Sales, *toSaleResponse(s))
	}
	return out, nil
}

// Delete borra una venta (operación administrativa; no revierte stock).
func (uc *CompleteSaleUseCase) Delete(id string) error {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if sale == nil {
		return &domain.NotFoundError{Resource: "venta", ID: id}
	}
	return uc.saleRepo.Delete(id)
}

// Receipt genera el comprobante PDF de una venta.
func (uc *CompleteSaleUseCase) Receipt(ctx context.Context, id string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, &domain.NotFoundError{Resource: "venta", ID: id}
	}
	return uc.receipts.GenerateReceipt(ctx, sale)
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal(),
		})
	}
	return &dto.SaleResponse{
		ID:            s.ID,
		UserID:        s.UserID,
		PaymentMethod: s.PaymentMethod,
		Items:         items,
		Total:         s.Total,
		CreatedAt:     s.CreatedAt,
	}
}
