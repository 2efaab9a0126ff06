package main

import "github.com/nordicpm/repokeeper/cmd/repokeeper/cmd"

func main() {
	cmd.Execute()
}
