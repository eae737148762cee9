package main

import (
	"context"
	"log"

	"github.com/Apurer/shareit/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("shareit-api: %v", err)
	}
}
