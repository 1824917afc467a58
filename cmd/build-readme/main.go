// cmd/build-readme/main.go
package main

import (
	"log"

	"croissant-bot/internal/command/builtin"
	"croissant-bot/internal/config"
	"croissant-bot/internal/docs"
	"croissant-bot/pkg/cmd"
)

func main() {
	reg := cmd.NewRegistry()
	builtin.Register(reg, builtin.Deps{})

	if err := docs.UpdateReadme(reg, config.CategoryWeights, "README.md"); err != nil {
		log.Fatal("[ERR] ", err)
	}
}
