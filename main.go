package main

import (
	"log"

	"authorsheaven/config"
	"authorsheaven/global"
	"authorsheaven/router"
)

func main() {
	config.InitConfig()
	defer func() {
		if global.RabbitConn != nil {
			global.RabbitConn.Close()
		}
	}()

	r := router.SetupRouter()

	port := config.AppConfig.App.Port
	if port == "" {
		port = "8080"
	}
	log.Printf("%s listening on :%s", config.AppConfig.App.Name, port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server start error: %v", err)
	}
}
