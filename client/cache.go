package client

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
)

// ErrCacheMiss is returned by Load when no user has been cached.
var ErrCacheMiss = errors.New("no cached user")

// UserCache persists the signed-in user so the app can come back up
// with a known identity before the server confirms it.
type UserCache interface {
	Load() (*User, error)
	Save(user *User) error
	Clear() error
}

// FileCache keeps the user as a JSON file on disk.
type FileCache struct {
	Path string
}

func (c *FileCache) Load() (*User, error) {
	raw, err := os.ReadFile(c.Path)
	if os.IsNotExist(err) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	var user User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *FileCache) Save(user *User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return os.WriteFile(c.Path, raw, 0600)
}

func (c *FileCache) Clear() error {
	err := os.Remove(c.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemoryCache is an in-process UserCache, mainly for tests.
type MemoryCache struct {
	mu   sync.Mutex
	user *User
}

func (c *MemoryCache) Load() (*User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return nil, ErrCacheMiss
	}
	copied := *c.user
	return &copied, nil
}

func (c *MemoryCache) Save(user *User) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *user
	c.user = &copied
	return nil
}

func (c *MemoryCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = nil
	return nil
}
