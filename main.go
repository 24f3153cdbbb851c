package main

import "github.com/frahmantamala/enterprise-access/cmd"

func main() {
	cmd.Execute()
}
