package main

import (
	"github.com/sgs-events/eventdesk/internal/cli"
)

func main() {
	cli.Execute()
}
