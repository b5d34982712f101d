package cli

import (
	"bytes"
	"fmt"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"
)

func newUserAddCommand(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "useradd <username>",
		Short: "Create an operator account",
		Args:  cobra.ExactArgs(1),
		RunE: d.withConfig(func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(d.cfg, d.in, d.out)
			if err != nil {
				return err
			}
			defer rt.Close()

			password, err := rt.prompt.Password("Password for " + args[0])
			if err != nil {
				return err
			}
			defer memguard.WipeBytes(password)
			confirm, err := rt.prompt.Password("Confirm password")
			if err != nil {
				return err
			}
			defer memguard.WipeBytes(confirm)
			if !bytes.Equal(password, confirm) {
				return fmt.Errorf("passwords do not match")
			}

			if err := rt.auth.Register(cmd.Context(), args[0], password); err != nil {
				return err
			}

			_, err = fmt.Fprintf(d.out, "created user %s\n", args[0])
			return err
		}),
	}
}
