package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/hermione/internal/cli"
	"github.com/julianstephens/hermione/internal/keyring"
)

type LoginStatusCmd struct{}

func (c *LoginStatusCmd) Run(ctx *cli.Context) error {
	email, err := keyring.GetEmail()
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}

	ok, err := ctx.AuthBackend().Status(context.Background(), email)
	if err != nil {
		return fmt.Errorf("failed to check authentication status: %w", err)
	}

	if email == "" {
		email = "(none)"
	}
	ctx.Printf("Email:  %s\n", email)
	if ok {
		ctx.Println("Status: authenticated")
	} else {
		ctx.Println("Status: not authenticated")
	}
	return nil
}

// LogoutCmd forgets the stored email and rotates the user token so the
// backend no longer recognizes this device
type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	for _, del := range []func() error{keyring.DeleteUserToken, keyring.DeleteEmail} {
		if err := del(); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return err
		}
	}
	ctx.Println("Signed out.")
	return nil
}
