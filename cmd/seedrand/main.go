package main

import (
	"log"

	"github.com/alaingilbert/seedrand/internal/cli"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)
	cli.Execute()
}
