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

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a write/link/symlink/unlink sequence against one TecnicoFS instance",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := newState()
		if err != nil {
			return err
		}

		f, err := s.Open(ctx, "/f1", tfs.CREAT)
		if err != nil {
			return fmt.Errorf("open(CREAT) /f1: %w", err)
		}
		if _, err := s.Write(ctx, f, []byte("AAA!")); err != nil {
			return fmt.Errorf("write /f1: %w", err)
		}
		if err := s.Close(ctx, f); err != nil {
			return fmt.Errorf("close /f1: %w", err)
		}

		if err := s.Link(ctx, "/f1", "/l1"); err != nil {
			return fmt.Errorf("link /f1 /l1: %w", err)
		}
		if err := s.SymLink(ctx, "/f1", "/s1"); err != nil {
			return fmt.Errorf("symlink /f1 /s1: %w", err)
		}

		for _, name := range []string{"/f1", "/l1", "/s1"} {
			h, err := s.Open(ctx, name, 0)
			if err != nil {
				return fmt.Errorf("open %s: %w", name, err)
			}
			buf := make([]byte, 16)
			n, err := s.Read(ctx, h, buf)
			if err != nil {
				return fmt.Errorf("read %s: %w", name, err)
			}
			fmt.Printf("%s -> %q\n", name, buf[:n])
			if err := s.Close(ctx, h); err != nil {
				return fmt.Errorf("close %s: %w", name, err)
			}
		}

		if err := s.Unlink(ctx, "/f1"); err != nil {
			return fmt.Errorf("unlink /f1: %w", err)
		}
		if _, err := s.Open(ctx, "/s1", 0); err != nil {
			fmt.Println("/s1 is now dangling, as expected:", err)
		}
		if _, err := s.Open(ctx, "/l1", 0); err == nil {
			fmt.Println("/l1 is still readable through the surviving hard link")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
