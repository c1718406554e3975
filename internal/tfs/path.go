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

package tfs

import "github.com/tecnicofs/tfs/cfg"

// validatePath checks name per spec §4.3 ("non-null, length > 1, length <
// MAX_FILE_NAME, begins with '/'") and returns the single path segment after
// the leading slash.
func validatePath(name string) (string, error) {
	if len(name) <= 1 {
		return "", ErrInvalidPath
	}
	if len(name) >= cfg.MaxFileName {
		return "", ErrInvalidPath
	}
	if name[0] != '/' {
		return "", ErrInvalidPath
	}
	return name[1:], nil
}
