package main

import (
	"github.com/mchmarny/sitestack/pkg/cli"
)

func main() {
	cli.Execute()
}
