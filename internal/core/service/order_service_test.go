package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rl1809/order-fulfillment/internal/config"
	"github.com/rl1809/order-fulfillment/internal/core/domain"
)

func TestSubmit_DoubleEncodedBody(t *testing.T) {
	starter := &mockStarter{}
	svc := NewOrderIntake(starter, config.BodyEncodingDouble, discardLogger)

	body := doubleEncode(map[string]any{
		"order": []map[string]any{
			{"itemId": "A", "quantity": 2},
			{"itemId": "B", "quantity": 1},
		},
	})

	exec, err := svc.Submit(context.Background(), body)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if exec.WorkflowID == "" {
		t.Error("expected a workflow id")
	}

	if starter.count() != 1 {
		t.Fatalf("expected exactly 1 run, got %d", starter.count())
	}
	started := starter.starts[0]
	if len(started) != 2 || started[0].ItemID != "A" || started[0].Quantity != 2 || started[1].ItemID != "B" {
		t.Errorf("unexpected order started: %+v", started)
	}
}

func TestSubmit_BareArrayPayload(t *testing.T) {
	starter := &mockStarter{}
	svc := NewOrderIntake(starter, config.BodyEncodingDouble, discardLogger)

	body := doubleEncode([]map[string]any{{"itemId": "A", "quantity": 3}})

	if _, err := svc.Submit(context.Background(), body); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if starter.count() != 1 {
		t.Errorf("expected 1 run, got %d", starter.count())
	}
}

func TestSubmit_EmptyOrderStarts(t *testing.T) {
	starter := &mockStarter{}
	svc := NewOrderIntake(starter, config.BodyEncodingDouble, discardLogger)

	if _, err := svc.Submit(context.Background(), doubleEncode(map[string]any{"order": []any{}})); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if starter.count() != 1 {
		t.Errorf("expected 1 run, got %d", starter.count())
	}
}

func TestSubmit_MalformedBodyStartsNothing(t *testing.T) {
	cases := map[string][]byte{
		"single encoded":    []byte(`{"order":[{"itemId":"A","quantity":1}]}`),
		"not json":          []byte(`order please`),
		"string of garbage": []byte(`"{not json"`),
		"missing order":     doubleEncode(map[string]any{"items": []any{}}),
		"zero quantity":     doubleEncode(map[string]any{"order": []map[string]any{{"itemId": "A", "quantity": 0}}}),
		"missing item id":   doubleEncode(map[string]any{"order": []map[string]any{{"quantity": 1}}}),
		"empty":             nil,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			starter := &mockStarter{}
			svc := NewOrderIntake(starter, config.BodyEncodingDouble, discardLogger)

			_, err := svc.Submit(context.Background(), body)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got: %v", err)
			}
			if starter.count() != 0 {
				t.Errorf("expected 0 runs, got %d", starter.count())
			}
		})
	}
}

func TestSubmit_PlainEncoding(t *testing.T) {
	starter := &mockStarter{}
	svc := NewOrderIntake(starter, config.BodyEncodingPlain, discardLogger)

	if _, err := svc.Submit(context.Background(), []byte(`{"order":[{"itemId":"A","quantity":1}]}`)); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	// A double-encoded body is not accepted in plain mode.
	_, err := svc.Submit(context.Background(), doubleEncode(map[string]any{"order": []any{}}))
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got: %v", err)
	}

	if starter.count() != 1 {
		t.Errorf("expected 1 run, got %d", starter.count())
	}
}

func TestSubmit_StartFailure(t *testing.T) {
	starter := &mockStarter{err: errors.New("connection refused")}
	svc := NewOrderIntake(starter, config.BodyEncodingDouble, discardLogger)

	_, err := svc.Submit(context.Background(), doubleEncode(map[string]any{"order": []any{}}))
	if !errors.Is(err, domain.ErrStartFailure) {
		t.Errorf("expected ErrStartFailure, got: %v", err)
	}
}

func TestSubmit_Concurrent(t *testing.T) {
	totalRequests := 50

	starter := &mockStarter{}
	svc := NewOrderIntake(starter, config.BodyEncodingDouble, discardLogger)
	body := doubleEncode(map[string]any{"order": []map[string]any{{"itemId": "A", "quantity": 1}}})

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Submit(context.Background(), body); err == nil {
				successCount.Add(1)
			}
		}()
	}

	wg.Wait()

	// Every accepted body starts its own run; nothing deduplicates.
	if successCount.Load() != int32(totalRequests) {
		t.Errorf("expected %d successes, got %d", totalRequests, successCount.Load())
	}
	if starter.count() != totalRequests {
		t.Errorf("expected %d runs, got %d", totalRequests, starter.count())
	}
}
