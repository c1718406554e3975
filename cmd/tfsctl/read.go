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
)

var readCmd = &cobra.Command{
	Use:   "read <path>",
	Short: "Open a path in a fresh instance and read it (fails with not found, since a fresh instance has no files)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := newState()
		if err != nil {
			return err
		}

		h, err := s.Open(ctx, args[0], 0)
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer s.Close(ctx, h)

		buf := make([]byte, loadedCfg.Params.BlockSize)
		n, err := s.Read(ctx, h, buf)
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		fmt.Printf("%q\n", buf[:n])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
}
