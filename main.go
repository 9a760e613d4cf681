package main

import "github.com/dzjyyds666/aq/cmd"

func main() {
	cmd.Execute()
}
