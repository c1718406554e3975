// Copyright 2024 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tecnicofs/tfs/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <host-src> <tfs-dst>",
	Short: "Stream a host file into a fresh TFS instance via copy_from_external_fs",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := newState()
		if err != nil {
			return err
		}

		n, err := importer.CopyFromExternalFS(ctx, s, args[0], args[1], loadedCfg.Params.BlockSize)
		if err != nil {
			return fmt.Errorf("import %s -> %s: %w", args[0], args[1], err)
		}
		fmt.Printf("copied %d bytes from %s to %s\n", n, args[0], args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
