// Package identity resolves whether a Telegram user is a quiz administrator
// and maintains the admin set.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/korjavin/dailyquizbot/models"
)

// ErrEmptyUsername is returned when a username is blank after normalization
var ErrEmptyUsername = errors.New("username is empty")

// AdminStore is the storage the Checker needs
type AdminStore interface {
	CountAdmins(ctx context.Context) (int, error)
	AdminExists(ctx context.Context, username string) (bool, error)
	AddAdmin(ctx context.Context, username string) (bool, error)
	RemoveAdmin(ctx context.Context, username string) (bool, error)
	ListAdmins(ctx context.Context) ([]models.Admin, error)
}

// Checker answers admin lookups. It always consults the store.
type Checker struct {
	store AdminStore
}

// NewChecker creates a Checker over the given store
func NewChecker(store AdminStore) *Checker {
	return &Checker{store: store}
}

// Normalize strips surrounding spaces and one leading "@" and lowercases the name
func Normalize(raw string) string {
	name := strings.TrimSpace(raw)
	name = strings.TrimPrefix(name, "@")
	return strings.ToLower(name)
}

// IsAdmin reports whether the username belongs to the admin set.
// Empty usernames are never admins and do not hit the store.
func (c *Checker) IsAdmin(ctx context.Context, rawUsername string) (bool, error) {
	name := Normalize(rawUsername)
	if name == "" {
		return false, nil
	}
	return c.store.AdminExists(ctx, name)
}

// Add puts a username into the admin set. It returns false if it was already there.
func (c *Checker) Add(ctx context.Context, rawUsername string) (bool, error) {
	name := Normalize(rawUsername)
	if name == "" {
		return false, ErrEmptyUsername
	}
	return c.store.AddAdmin(ctx, name)
}

// Remove deletes a username from the admin set. It returns false if it was not there.
func (c *Checker) Remove(ctx context.Context, rawUsername string) (bool, error) {
	name := Normalize(rawUsername)
	if name == "" {
		return false, ErrEmptyUsername
	}
	return c.store.RemoveAdmin(ctx, name)
}

// Seed adds the given usernames when the admin set is empty
func (c *Checker) Seed(ctx context.Context, usernames []string) error {
	n, err := c.store.CountAdmins(ctx)
	if err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if n > 0 {
		return nil
	}

	for _, u := range usernames {
		added, err := c.Add(ctx, u)
		if errors.Is(err, ErrEmptyUsername) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to seed admin %q: %w", u, err)
		}
		if added {
			log.Printf("Seeded admin %s", Normalize(u))
		}
	}
	return nil
}

// List returns the normalized usernames of all admins
func (c *Checker) List(ctx context.Context) ([]string, error) {
	admins, err := c.store.ListAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	names := make([]string, 0, len(admins))
	for _, a := range admins {
		names = append(names, a.Username)
	}
	return names, nil
}
