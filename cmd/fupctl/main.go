package main

import "github.com/fupdash/backend/internal/cmd"

func main() {
	cmd.Execute()
}
