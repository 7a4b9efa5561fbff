package main

import "github.com/lucidxml/xmlcore/cmd/xmlcore"

func main() {
	cmd.Execute()
}
