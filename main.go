/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package main

import (
	"os"

	"github.com/Paintersrp/noted/internal/state"
	"github.com/Paintersrp/noted/pkg/cmd/root"
)

func main() {
	os.Exit(run())
}

func run() int {
	s := &state.State{}
	defer s.Close()

	if err := root.NewCmdRoot(s, nil).Execute(); err != nil {
		return 1
	}
	return 0
}
