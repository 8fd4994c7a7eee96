package main

import "github.com/RedArtelerist/OnlineBookStore/cmd"

func main() {
	cmd.Start()
}
