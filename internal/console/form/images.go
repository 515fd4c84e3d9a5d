package form

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
)

// EncodeImageFile reads a local image and encodes it as a data URI.
// The MIME type is sniffed from the bytes rather than trusted from the
// file extension.
func EncodeImageFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("image %s is empty", path)
	}

	mime := http.DetectContentType(data)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// AddImageFromFile encodes one file and appends it to the image list.
func (c *Controller) AddImageFromFile(path string) error {
	return c.AddImagesFromFiles(path)
}

// AddImagesFromFiles encodes the given files concurrently and appends
// the results in argument order, regardless of which encode finishes
// first. The append happens under the controller lock against the
// image list as it exists at that moment, so field edits made while
// files were encoding are kept.
func (c *Controller) AddImagesFromFiles(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}

	encoded := make([]string, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			encoded[i], errs[i] = EncodeImageFile(path)
		}(i, path)
	}
	wg.Wait()

	c.mu.Lock()
	for i, img := range encoded {
		if errs[i] == nil {
			c.draft.Images = append(c.draft.Images, img)
		}
	}
	c.mu.Unlock()

	return errors.Join(errs...)
}
