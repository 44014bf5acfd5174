package main

import (
	"github.com/dnstrust/dnstrust/cmd"
)

func main() {
	cmd.Execute()
}
