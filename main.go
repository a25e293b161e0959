package main

import "github.com/zooarch/faunadb/cmd"

func main() {
	cmd.Execute()
}
