// Recordlens evaluates Korean student records (생활기록부) against a weighted rubric.
package main

import (
	"github.com/huangsam/recordlens/cmd"
	"github.com/huangsam/recordlens/internal/contract"
	"github.com/huangsam/recordlens/internal/history"
)

func main() {
	err := cmd.Execute()
	history.CloseStores()
	if err != nil {
		contract.LogFatal("Cannot execute recordlens", err)
	}
}
