package main

import "github.com/minvws/nl-covid19-coronacheck-dgc/cmd"

func main() {
	cmd.Execute()
}
