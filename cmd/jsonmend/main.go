// Command jsonmend copies a SQLite database into a new file, unwrapping JSON
// values that were encoded more than once.
package main

import "github.com/mesh-intelligence/jsonmend/internal/cli"

func main() {
	cli.Execute()
}
