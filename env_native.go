//go:build !wasm

package dompdf

import (
	"fmt"
	"os"
)

// initIO sets up console logging and file access for native builds.
func (c *Canvas) initIO() {
	c.logger = func(message ...any) {
		fmt.Println(message...)
	}
	c.writeFile = func(filePath string, content []byte) error {
		return os.WriteFile(filePath, content, 0644)
	}
	c.readFile = os.ReadFile
}
