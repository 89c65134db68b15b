package main

import (
	"cardcomps-backend/cmd/comps-cli/cmd"
	"cardcomps-backend/lib/telemetry"
)

func main() {
	telemetry.InitSlog(false)
	cmd.Execute()
}
