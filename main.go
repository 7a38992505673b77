// main holds the entry logic for the uli CLI.
package main

import (
	"os"

	"github.com/huangsam/uli/cmd"
	"github.com/huangsam/uli/internal/contract"
	"github.com/huangsam/uli/internal/store"
)

func main() {
	cmd.SetStoreManager(store.Manager)
	err := cmd.Execute()
	store.CloseStore()
	if err != nil {
		contract.LogWarn("uli failed", err)
		os.Exit(1)
	}
}
