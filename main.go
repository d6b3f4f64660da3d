package main

import "github.com/birkenlabs/birkentempprofiler/cmd"

func main() {
	cmd.Execute()
}
