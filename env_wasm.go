//go:build wasm

package dompdf

import (
	"io"
	"strings"
	"syscall/js"

	"github.com/tinywasm/fetch"
	"github.com/tinywasm/fmt"
)

// initIO sets up console logging, downloads and fetch-based loading for the
// browser.
func (c *Canvas) initIO() {
	c.logger = func(message ...any) {
		console := js.Global().Get("console")
		if console.IsUndefined() {
			return
		}
		parts := make([]string, len(message))
		for i, m := range message {
			parts[i] = fmt.Convert(m).String()
		}
		console.Call("log", strings.Join(parts, " "))
	}
	c.writeFile = download
	c.readFile = fetchFile
}

// download hands content to the browser as a file named filePath.
func download(filePath string, content []byte) error {
	data := js.Global().Get("Uint8Array").New(len(content))
	js.CopyBytesToJS(data, content)

	blob := js.Global().Get("Blob").New([]any{data}, map[string]any{"type": "application/pdf"})
	url := js.Global().Get("URL").Call("createObjectURL", blob)

	link := js.Global().Get("document").Call("createElement", "a")
	link.Set("href", url)
	link.Set("download", filePath)
	link.Call("click")
	js.Global().Get("URL").Call("revokeObjectURL", url)
	return nil
}

// fetchFile loads a static resource such as an image.
func fetchFile(filePath string) ([]byte, error) {
	resp, err := fetch.Get(filePath)
	if err != nil {
		return nil, fmt.Errf("error fetching file %s: %s", filePath, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errf("error fetching file %s: status %d", filePath, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errf("error reading response body for %s: %s", filePath, err.Error())
	}
	return data, nil
}
