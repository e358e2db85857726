// fwiq composes client configuration artifacts for the email automation
// product: a reply prompt for the LLM and a label taxonomy with its
// provisioning order.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
