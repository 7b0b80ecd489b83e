package migration

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/account-opening-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/account-opening-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/account-opening-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/account-opening-service/internal/domain/port/persistence"
)

// Demo users for local environments without a reachable directory service.
// IDs follow the directory's object identifier format.
var seedUsers = []struct {
	id        string
	firstName string
	lastName  string
	email     string
}{
	{"11111111-1111-1111-1111-111111111111", "Alice", "Johnson", "alice.johnson@example.com"},
	{"22222222-2222-2222-2222-222222222222", "Bob", "Smith", "bob.smith@example.com"},
	{"33333333-3333-3333-3333-333333333333", "Carol", "Williams", "carol.williams@example.com"},
}

// One demo account so the listing view has something to show. The fixed ID
// makes the seed re-runnable; live openings always get fresh UUIDs.
var seedAccounts = []struct {
	id            string
	accountNumber string
	accountTitle  string
	balanceCents  int64
	userID        string
}{
	{"aaaaaaaa-0000-0000-0000-000000000001", "DEMO-0001", "Savings", 100000, "11111111-1111-1111-1111-111111111111"},
}

// CreateSeedUsers inserts the demo users, leaving any that already exist untouched
func CreateSeedUsers(ctx context.Context, users persistence.UserRepository, timeProvider coreport.TimeProvider) error {
	for _, seed := range seedUsers {
		user, err := entity.NewUser(seed.id, seed.firstName, seed.lastName, seed.email, "", "", timeProvider)
		if err != nil {
			return err
		}

		if _, err := users.CreateIfAbsent(ctx, user); err != nil {
			return err
		}
	}

	return nil
}

// CreateSeedAccounts inserts the demo accounts, skipping any that already
// exist. Must run after CreateSeedUsers so the owner rows resolve.
func CreateSeedAccounts(ctx context.Context, accounts persistence.AccountRepository, timeProvider coreport.TimeProvider) error {
	for _, seed := range seedAccounts {
		if _, err := accounts.GetByID(ctx, seed.id); err == nil {
			continue
		} else if !errors.Is(err, errs.ErrAccountNotFound) {
			return err
		}

		account, err := entity.NewAccount(seed.id, seed.accountNumber, seed.accountTitle, seed.balanceCents, entity.AccountStatusActive, seed.userID, timeProvider)
		if err != nil {
			return err
		}

		if err := accounts.Create(ctx, account); err != nil {
			return err
		}
	}

	return nil
}
