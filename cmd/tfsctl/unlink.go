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

	"github.com/tecnicofs/tfs/internal/tfs"
)

var unlinkCmd = &cobra.Command{
	Use:   "unlink <path>",
	Short: "Create path, then unlink it, demonstrating the verb in isolation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := newState()
		if err != nil {
			return err
		}

		h, err := s.Open(ctx, args[0], tfs.CREAT)
		if err != nil {
			return fmt.Errorf("open(CREAT) %s: %w", args[0], err)
		}
		if err := s.Close(ctx, h); err != nil {
			return err
		}

		if err := s.Unlink(ctx, args[0]); err != nil {
			return fmt.Errorf("unlink %s: %w", args[0], err)
		}
		fmt.Printf("unlinked %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unlinkCmd)
}
