package service

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/rl1809/order-fulfillment/internal/config"
	"github.com/rl1809/order-fulfillment/internal/core/domain"
)

// decodeBody unmarshals a request body into v. In double encoding the body is
// a JSON string literal whose content is the JSON document itself.
func decodeBody(body []byte, encoding string, v any) error {
	doc := bytes.TrimSpace(body)

	if encoding != config.BodyEncodingPlain {
		var inner string
		if err := json.Unmarshal(doc, &inner); err != nil {
			return fmt.Errorf("%w: body is not a JSON string: %v", domain.ErrValidation, err)
		}
		doc = bytes.TrimSpace([]byte(inner))
	}

	if err := json.Unmarshal(doc, v); err != nil {
		return fmt.Errorf("%w: malformed payload: %v", domain.ErrValidation, err)
	}
	return nil
}

type orderPayload struct {
	Order []domain.LineItem `json:"order"`
}

// decodeOrder accepts either {"order":[...]} or a bare array of line items.
func decodeOrder(body []byte, encoding string) ([]domain.LineItem, error) {
	var raw json.RawMessage
	if err := decodeBody(body, encoding, &raw); err != nil {
		return nil, err
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var items []domain.LineItem
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("%w: malformed order: %v", domain.ErrValidation, err)
		}
		return items, nil
	}

	var payload orderPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: malformed order: %v", domain.ErrValidation, err)
	}
	if payload.Order == nil {
		return nil, fmt.Errorf("%w: order is required", domain.ErrValidation)
	}
	return payload.Order, nil
}
