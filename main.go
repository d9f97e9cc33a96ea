package main

import "github.com/theirongolddev/kwsp/cmd"

func main() {
	cmd.Execute()
}
