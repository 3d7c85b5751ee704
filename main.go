package main

import "github.com/remixware/steamadd/cmd"

func main() {
	cmd.Execute()
}
