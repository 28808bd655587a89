package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alejandrodnm/sellerbot/internal/adapters/storage"
)

// runCost muestra o registra el coste de un producto.
// Con un solo argumento muestra el coste actual; con dos lo registra
// (un valor 0 lo elimina).
func runCost(ctx context.Context, store *storage.SQLiteStore, args []string) error {
	switch len(args) {
	case 1:
		cost, ok, err := store.GetCost(ctx, args[0])
		if err != nil {
			return err
		}
		if !ok {
			fmt.Printf("%s: no cost registered\n", args[0])
			return nil
		}
		fmt.Printf("%s: %.2f\n", args[0], cost)
		return nil

	case 2:
		cost, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid cost %q: %w", args[1], err)
		}
		if err := store.SetCost(ctx, args[0], cost); err != nil {
			return err
		}
		if cost <= 0 {
			fmt.Printf("%s: cost removed\n", args[0])
		} else {
			fmt.Printf("%s: cost set to %.2f\n", args[0], cost)
		}
		return nil

	default:
		return fmt.Errorf("usage: sellerbot cost <barcode> [value]")
	}
}
