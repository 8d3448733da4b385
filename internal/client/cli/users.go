package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/userauth/internal/schema"
)

// Users prints the public user directory. It does not need a session.
func (a *App) Users(ctx context.Context) error {
	list, err := a.api.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No users yet")
		return nil
	}
	printProfiles(a.out, list)
	return nil
}

func printProfiles(w io.Writer, list []schema.Profile) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tCREATED")
	for _, p := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, p.Name, p.Email, p.CreatedAt.Local().Format(time.DateTime))
	}
	_ = tw.Flush()
}
