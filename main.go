package main

import (
	_ "embed"

	"github.com/AnushaPriya2003/anusha/cmd"
)

//go:embed config/config.yaml
var c string

func main() {
	cmd.Execute(c)
}
