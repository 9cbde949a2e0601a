package main

import (
	_ "webworker.GO/custom"

	"webworker.GO/cmd"
	"webworker.GO/config"
)

func main() {
	config.LoadEnv()
	config.LoadAppConfig()
	cmd.Execute()
}
