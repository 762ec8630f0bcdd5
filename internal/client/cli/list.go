package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"useradmin-cli/internal/client/models"
)

// List refetches and renders the user table.
func (a *App) List(ctx context.Context) error {
	a.users.Fetch(ctx)
	a.renderList()
	return nil
}

// Search sets the search term; the store refetches implicitly.
func (a *App) Search(ctx context.Context, term string) error {
	a.users.SetSearchTerm(ctx, term)
	a.renderList()
	return nil
}

// Filter sets the active-status filter; the store refetches implicitly.
func (a *App) Filter(ctx context.Context, value string) error {
	var filter models.UserFilter
	switch value {
	case "any":
		filter.IsActive = models.FilterActiveAny
	case "active":
		filter.IsActive = models.FilterActiveOnly
	case "inactive":
		filter.IsActive = models.FilterInactive
	default:
		fmt.Fprintln(a.out, "Usage: filter <any|active|inactive>")
		return nil
	}
	a.users.UpdateFilters(ctx, filter)
	a.renderList()
	return nil
}

// Reset clears the search term and filter.
func (a *App) Reset(ctx context.Context) error {
	a.users.ResetFilters(ctx)
	a.renderList()
	return nil
}

// Refresh refetches with the current criteria.
func (a *App) Refresh(ctx context.Context) error {
	a.users.Fetch(ctx)
	a.renderList()
	return nil
}

// Show fetches one user fresh from the server and prints the detail view.
func (a *App) Show(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: show <id>")
		return nil
	}

	user, err := a.userAPI.GetUser(ctx, id)
	if err != nil {
		a.banner(fmt.Sprintf("Failed to load user %d.", id))
		return err
	}
	printUserDetail(a.out, user)
	return nil
}

func (a *App) renderList() {
	if msg := a.users.Err(); msg != "" {
		a.banner(msg)
		return
	}

	list := a.users.Users()
	if term, filter := a.users.SearchTerm(), a.users.Filter(); term != "" || filter.IsActive != "" {
		fmt.Fprintf(a.out, "search=%q filter=%s\n", term, filterLabel(filter))
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No users found.")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tFULL NAME\tACTIVE\tCREATED")
	for _, u := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\t%s\n",
			u.ID, u.Username, u.Email, u.FullName, u.IsActive, u.CreatedAt.Format("2006-01-02"))
	}
	tw.Flush()
}

func filterLabel(f models.UserFilter) string {
	switch f.IsActive {
	case models.FilterActiveOnly:
		return "active"
	case models.FilterInactive:
		return "inactive"
	default:
		return "any"
	}
}

func printUserDetail(w io.Writer, u models.User) {
	fmt.Fprintf(w, "ID:        %d\n", u.ID)
	fmt.Fprintf(w, "Username:  %s\n", u.Username)
	fmt.Fprintf(w, "Email:     %s\n", u.Email)
	fmt.Fprintf(w, "Full name: %s\n", u.FullName)
	fmt.Fprintf(w, "Active:    %t\n", u.IsActive)
	fmt.Fprintf(w, "Created:   %s\n", u.CreatedAt.Format("2006-01-02 15:04:05"))
}

func parseID(arg string) (int, error) {
	return strconv.Atoi(arg)
}
