package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func runTree(cmd *cobra.Command, args []string) error {

	_, target, err := loadScene()
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), target.Root.HierarchyAsString())
	return nil

}
