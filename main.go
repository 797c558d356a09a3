package main

import "github.com/lepinkainen/hondana/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
