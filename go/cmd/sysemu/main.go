package main

import (
	"github.com/lunixbochs/sysemu/go/cmd"

	_ "github.com/lunixbochs/sysemu/go/cmd/run"
	_ "github.com/lunixbochs/sysemu/go/cmd/table"
)

func main() { cmd.Main() }
