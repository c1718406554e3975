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

// Command tfsctl is a test-driver CLI demonstrating TecnicoFS's public
// operation-layer API. Per spec §1, command-line entry points are an
// external collaborator, out of the core's scope; per spec §6/§9, TFS holds
// no state across process restarts, so tfsctl's "demo" command is the only
// subcommand that exercises more than one operation meaningfully — every
// other subcommand starts from a fresh, empty filesystem each invocation.
package main

func main() {
	Execute()
}
