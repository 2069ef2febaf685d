// Command quanta converts values between units, describes units and
// interpolates in one-dimensional scattered samples.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
