package main

import "github/chapool/sapphire-relay/cmd"

func main() {
	cmd.Execute()
}
