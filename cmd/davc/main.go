package main

import (
	"log"

	"github.com/xxxsen/davkit/cmd/davc/cmd"
)

func main() {
	if err := cmd.NewRoot().Execute(); err != nil {
		log.Fatalf("exec cmd failed, err:%v", err)
	}
}
