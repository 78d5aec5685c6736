package service

import (
	"context"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/repository"
)

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
}

func NewInvoiceService(invoiceRepo repository.InvoiceRepository) InvoiceService {
	return &invoiceService{invoiceRepo: invoiceRepo}
}

func (s *invoiceService) GetInvoice(ctx context.Context, invoiceID int32) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, invoiceID)
}
