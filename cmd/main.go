package main

import (
	"dietcraft/config"
	"dietcraft/routes"
	"dietcraft/services"
)

func main() {
	config.InitDB()

	rt := services.NewRealtimeHub()
	services.InitPlanEvents(rt)

	r := routes.SetupRouter(rt)
	r.Run(":8080")
}
