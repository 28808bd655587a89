package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/alejandrodnm/sellerbot/internal/application/advisor"
)

const defaultSalesDays = 30

func runSales(ctx context.Context, service *advisor.Service, args []string) error {
	days := defaultSalesDays
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed <= 0 {
			return fmt.Errorf("usage: sellerbot sales <days> (got %q)", args[0])
		}
		days = parsed
	}

	to := time.Now()
	from := to.AddDate(0, 0, -days)
	return service.RunSales(ctx, from, to)
}
