package account

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/11bDev/yall-sub001/internal/domain"
)

const accountsKey = "accounts"

// ErrNotFound is returned when an account id has no stored account.
var ErrNotFound = fmt.Errorf("account not found")

// Service persists accounts as one JSON document in the secret store.
type Service struct {
	store domain.SecretStore
}

// New returns an account service backed by the given store.
func New(s domain.SecretStore) *Service { return &Service{store: s} }

// List returns every stored account, oldest first.
func (s *Service) List() ([]domain.Account, error) {
	raw, ok, err := s.store.Get(accountsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var accounts []domain.Account
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		return nil, fmt.Errorf("stored accounts corrupt: %w", err)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})
	return accounts, nil
}

// ByPlatform returns the active accounts for one platform.
func (s *Service) ByPlatform(p domain.Platform) ([]domain.Account, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	var out []domain.Account
	for _, a := range all {
		if a.Platform == p && a.Active {
			out = append(out, a)
		}
	}
	return out, nil
}

// Get returns the account with the given id.
func (s *Service) Get(id string) (domain.Account, error) {
	all, err := s.List()
	if err != nil {
		return domain.Account{}, err
	}
	for _, a := range all {
		if a.ID == id {
			return a, nil
		}
	}
	return domain.Account{}, ErrNotFound
}

// Save inserts the account or replaces the stored copy with the same id.
func (s *Service) Save(a domain.Account) error {
	all, err := s.List()
	if err != nil {
		return err
	}
	replaced := false
	for i := range all {
		if all[i].ID == a.ID {
			all[i] = a
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, a)
	}
	return s.write(all)
}

// Delete removes the account with the given id.
func (s *Service) Delete(id string) error {
	all, err := s.List()
	if err != nil {
		return err
	}
	out := all[:0]
	found := false
	for _, a := range all {
		if a.ID == id {
			found = true
			continue
		}
		out = append(out, a)
	}
	if !found {
		return ErrNotFound
	}
	return s.write(out)
}

func (s *Service) write(accounts []domain.Account) error {
	raw, err := json.Marshal(accounts)
	if err != nil {
		return err
	}
	return s.store.Set(accountsKey, string(raw))
}
