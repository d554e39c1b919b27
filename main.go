package main

import "github.com/jsphweid/tonebox/cmd"

func main() {
	cmd.Execute()
}
