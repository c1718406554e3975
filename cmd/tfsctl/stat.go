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

var statCmd = &cobra.Command{
	Use:   "stat <path>",
	Short: "Create path, then print its inumber/kind/size/hard-link count",
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

		info, err := s.Stat(ctx, args[0])
		if err != nil {
			return fmt.Errorf("stat %s: %w", args[0], err)
		}
		fmt.Printf("%s: inumber=%d kind=%s size=%d hard_links=%d\n",
			args[0], info.Inumber, info.Kind, info.Size, info.HardLinks)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statCmd)
}
