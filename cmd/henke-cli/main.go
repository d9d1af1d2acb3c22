package main

import (
	"context"
	"henke-client/cmd/henke-cli/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
