package main

import "github.com/bryanchriswhite/spritegrid/cmd/spritegrid/commands"

func main() {
	commands.Execute()
}
