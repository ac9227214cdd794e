package main

import "github.com/saadjs/maxout/cmd/maxout"

func main() {
	maxout.Execute()
}
