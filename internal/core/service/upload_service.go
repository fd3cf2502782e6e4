package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
	"github.com/rl1809/order-fulfillment/internal/port"
)

var (
	ErrMissingFields   = fmt.Errorf("%w: missing fields", domain.ErrValidation)
	ErrInvalidQuantity = fmt.Errorf("%w: quantity must not be negative", domain.ErrValidation)
)

type UploadRequest struct {
	UserID   *string `json:"userId"`
	FileName *string `json:"fileName"`
	Name     *string `json:"name"`
	Quantity *int    `json:"quantity"`
}

func (r UploadRequest) complete() bool {
	return r.UserID != nil && *r.UserID != "" &&
		r.FileName != nil && *r.FileName != "" &&
		r.Name != nil && *r.Name != "" &&
		r.Quantity != nil
}

type UploadResult struct {
	ItemID string
	Upload port.UploadAuthorization
}

// UploadService registers a new item and hands back a short-lived URL the
// creator uses to upload the item's image.
type UploadService struct {
	items        port.ItemRepository
	signer       port.UploadSigner
	bodyEncoding string
	newID        func() (string, error)
	logger       *slog.Logger
}

func NewUploadService(items port.ItemRepository, signer port.UploadSigner, bodyEncoding string, logger *slog.Logger) *UploadService {
	return &UploadService{
		items:        items,
		signer:       signer,
		bodyEncoding: bodyEncoding,
		newID:        domain.NewItemID,
		logger:       logger,
	}
}

func (s *UploadService) Register(ctx context.Context, body []byte) (UploadResult, error) {
	var req UploadRequest
	if err := decodeBody(body, s.bodyEncoding, &req); err != nil {
		return UploadResult{}, err
	}
	if !req.complete() {
		return UploadResult{}, ErrMissingFields
	}
	if *req.Quantity < 0 {
		return UploadResult{}, ErrInvalidQuantity
	}

	id, err := s.newID()
	if err != nil {
		return UploadResult{}, fmt.Errorf("generate item id: %w", err)
	}

	item := domain.Item{
		ID:        id,
		Name:      *req.Name,
		Stock:     *req.Quantity,
		ImageName: *req.FileName,
		CreatedBy: *req.UserID,
	}
	if err := s.items.PutItem(ctx, item); err != nil {
		return UploadResult{}, fmt.Errorf("put item %s: %w", id, err)
	}

	upload, err := s.signer.PresignUpload(ctx, item.ImageName)
	if err != nil {
		return UploadResult{}, err
	}

	s.logger.Info("item registered", "item_id", id, "created_by", item.CreatedBy, "stock", item.Stock)
	return UploadResult{ItemID: id, Upload: upload}, nil
}
