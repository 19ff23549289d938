// This program talks to a ledger node over its public API.
package main

import "github.com/ardanlabs/ledger/app/tooling/ledger/cmd"

func main() {
	cmd.Execute()
}
