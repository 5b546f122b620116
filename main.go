package main

import (
	"github.com/edward9487/minecraft-mod-converter/cmd"
	"github.com/edward9487/minecraft-mod-converter/logger"

	_ "go.uber.org/automaxprocs/maxprocs"
)

func main() {
	logger.InitLogger() // Initialize the logger first
	defer logger.Sync() // Ensure logs are flushed on exit
	cmd.Execute()
}
