// latidx parses and indexes LaTeX files: package imports, macro
// definitions, and the project dependency tree they form.
package main

import "github.com/plandes/latidx/internal/cli"

func main() {
	cli.Execute()
}
