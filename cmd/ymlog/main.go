package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		// Interrupted runs already reported themselves through the stream.
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "ymlog: %v\n", err)
		}
		os.Exit(1)
	}
}
