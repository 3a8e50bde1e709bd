package main

import "github.com/efermi/coolreader/cmd"

func main() {
	cmd.Execute()
}
