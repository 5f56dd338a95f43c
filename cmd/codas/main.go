package main

import (
	"github.com/with-caer/codas/internal/cmd"
)

func main() {
	cmd.Execute()
}
