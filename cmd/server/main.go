package main

import (
	"log"

	"github.com/okdong/marketplace/internal/server"
	"github.com/okdong/marketplace/internal/server/config"
)

func main() {
	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run()
}
