package main

import (
	"context"
	"log"

	"github.com/Apurer/shareit/internal/app/gateway"
)

func main() {
	if err := gateway.Run(context.Background()); err != nil {
		log.Fatalf("shareit-gateway: %v", err)
	}
}
