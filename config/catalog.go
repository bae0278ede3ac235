package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"
)

// CannedResponse is one entry of the responses file.
type CannedResponse struct {
	Response string `json:"response"`
	Category string `json:"category"`
}

// Catalog holds the canned replies keyed by category number.
type Catalog struct {
	filePath  string
	responses map[string]CannedResponse
	mu        sync.RWMutex
}

// NewCatalog loads the responses file. A missing file yields an empty
// catalog, so every category falls through to a custom reply.
func NewCatalog(filePath string) (*Catalog, error) {
	c := &Catalog{
		filePath:  filePath,
		responses: map[string]CannedResponse{},
	}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload re-reads the responses file from disk.
func (c *Catalog) Reload() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			c.responses = map[string]CannedResponse{}
			return nil
		}
		return fmt.Errorf("reading responses %s: %w", c.filePath, err)
	}

	responses := map[string]CannedResponse{}
	if err := json.Unmarshal(data, &responses); err != nil {
		return fmt.Errorf("parsing responses %s: %w", c.filePath, err)
	}
	c.responses = responses
	return nil
}

// Lookup returns the canned response for a category number.
func (c *Catalog) Lookup(category int) (CannedResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.responses[strconv.Itoa(category)]
	if !ok || r.Response == "" {
		return CannedResponse{}, false
	}
	return r, true
}

// Len reports how many categories have a response.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.responses)
}
