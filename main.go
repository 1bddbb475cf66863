package main

import commands "github.com/vladimir-rom/chartprops/cmd"

func main() {
	commands.Execute()
}
