package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/order-fulfillment/internal/adapter/orchestrator"
	"github.com/rl1809/order-fulfillment/internal/adapter/storage"
	"github.com/rl1809/order-fulfillment/internal/core/domain"
)

const (
	itemID        = "stress-item"
	initialStock  = 20
	totalRequests = 50
	quantity      = 1
)

func main() {
	ctx := context.Background()

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	defer rdb.Close()

	items := storage.NewRedisAdapter(rdb)
	if err := items.PutItem(ctx, domain.Item{ID: itemID, Name: "Stress Item", Stock: initialStock}); err != nil {
		log.Fatalf("failed to seed item: %v", err)
	}

	// Orders are never written here; the recorder is not part of the race.
	acts := orchestrator.NewActivities(items, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	line := domain.LineItem{ItemID: itemID, Quantity: quantity}

	var passed atomic.Int32
	var rejected atomic.Int32
	var checked sync.WaitGroup
	var done sync.WaitGroup
	start := time.Now()

	// Every request checks stock before any of them decrements, the widest
	// form of the check-then-act window.
	checked.Add(totalRequests)
	for i := 0; i < totalRequests; i++ {
		done.Add(1)
		go func() {
			defer done.Done()

			err := acts.CheckStock(ctx, line)
			checked.Done()
			checked.Wait()

			if err != nil {
				rejected.Add(1)
				return
			}
			passed.Add(1)
			if err := acts.UpdateStock(ctx, line); err != nil {
				log.Printf("decrement failed: %v", err)
			}
		}()
	}

	done.Wait()
	elapsed := time.Since(start)

	finalStock, err := items.Stock(ctx, itemID)
	if err != nil {
		log.Fatalf("failed to read final stock: %v", err)
	}

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Initial Stock:     %d\n", initialStock)
	fmt.Printf("Total Requests:    %d\n", totalRequests)
	fmt.Printf("Passed Validation: %d\n", passed.Load())
	fmt.Printf("Rejected:          %d\n", rejected.Load())
	fmt.Printf("Duration:          %v\n", elapsed)
	fmt.Printf("Final Redis Stock: %d\n", finalStock)
	fmt.Println("==========================================")

	if finalStock < 0 {
		fmt.Printf("OVERSOLD: %d units committed beyond stock\n", -finalStock)
	} else {
		fmt.Println("no oversell observed in this run")
	}
}
