package main

import "github.com/mohithhhh/maersk-copilot/internal/cmd"

func main() {
	cmd.Execute()
}
