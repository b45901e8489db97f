package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

func printJSON(w io.Writer, v any) error {
	dump, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", dump)
	return err
}

func printError(err any) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
}
