package main

import "github.com/theirongolddev/budgie/cmd"

func main() {
	cmd.Execute()
}
