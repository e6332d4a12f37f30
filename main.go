package main

import "github.com/Yates-Labs/automigrate/cmd"

func main() {
	cmd.Execute()
}
