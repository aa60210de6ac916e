package main

import (
	"github.com/gkbrk/bencode2json/pkg/commands"
)

func main() {
	commands.ExecuteB2JCmd()
}
