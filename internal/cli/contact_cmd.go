package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/mvaldelvira/corredor/internal/cli/formatter"
	"github.com/mvaldelvira/corredor/internal/domain"
	"github.com/mvaldelvira/corredor/internal/pipeline"
	"github.com/spf13/cobra"
)

func newContactCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Manage contacts",
	}

	cmd.AddCommand(
		newContactAddCmd(app),
		newContactListCmd(app),
		newContactInspectCmd(app),
		newContactUpdateCmd(app),
		newContactMoveCmd(app),
		newContactRemoveCmd(app),
	)

	return cmd
}

func newContactAddCmd(app *App) *cobra.Command {
	var name, email, phone, address, need, source, class, notes string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &domain.Contact{
				FullName:       name,
				Email:          email,
				Phone:          phone,
				Address:        address,
				Need:           domain.NeedType(need),
				Source:         domain.Source(source),
				Classification: domain.Classification(class),
				Notes:          notes,
			}

			if err := app.Contacts.Create(context.Background(), app.Session, c); err != nil {
				return err
			}

			fmt.Printf("Created contact %s [%s]\n", c.FullName, formatter.ShortID(c.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&address, "address", "", "Street address")
	cmd.Flags().StringVar(&need, "need", string(domain.NeedBuy), "Need (compra|venta|alquiler|alquilar|valoracion)")
	cmd.Flags().StringVar(&source, "source", string(domain.SourceOffice), "Lead source (web|portal|referido|cartel|oficina)")
	cmd.Flags().StringVar(&class, "class", string(domain.ClassWarm), "Classification (caliente|templado|frio)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newContactListCmd(app *App) *cobra.Command {
	var search, status, need, source, class, from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			contacts, err := app.Contacts.List(context.Background(), app.Session)
			if err != nil {
				return err
			}

			f := pipeline.Filter{
				Search:         search,
				Status:         domain.Stage(status),
				Need:           domain.NeedType(need),
				Source:         domain.Source(source),
				Classification: domain.Classification(class),
			}
			if from != "" {
				d, err := time.Parse("2006-01-02", from)
				if err != nil {
					return fmt.Errorf("invalid --from date %q: %w", from, err)
				}
				f.CreatedFrom = &d
			}
			if to != "" {
				d, err := time.Parse("2006-01-02", to)
				if err != nil {
					return fmt.Errorf("invalid --to date %q: %w", to, err)
				}
				f.CreatedTo = &d
			}

			contacts = f.Apply(contacts)
			if len(contacts) == 0 {
				fmt.Println("No contacts found.")
				return nil
			}

			fmt.Printf("%s", formatter.FormatContactList(contacts))
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Substring match on name, email, phone or address")
	cmd.Flags().StringVar(&status, "status", "", "Filter by stage")
	cmd.Flags().StringVar(&need, "need", "", "Filter by need")
	cmd.Flags().StringVar(&source, "source", "", "Filter by lead source")
	cmd.Flags().StringVar(&class, "class", "", "Filter by classification")
	cmd.Flags().StringVar(&from, "from", "", "Created on or after (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Created on or before (YYYY-MM-DD)")

	return cmd
}

func newContactInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show contact details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveContactID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Contacts.GetByID(ctx, app.Session, id)
			if err != nil {
				return err
			}
			fmt.Printf("%s", formatter.FormatContactInspect(c))
			return nil
		},
	}
}

func newContactUpdateCmd(app *App) *cobra.Command {
	var name, email, phone, address, need, source, class, notes string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveContactID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Contacts.GetByID(ctx, app.Session, id)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				c.FullName = name
			}
			if cmd.Flags().Changed("email") {
				c.Email = email
			}
			if cmd.Flags().Changed("phone") {
				c.Phone = phone
			}
			if cmd.Flags().Changed("address") {
				c.Address = address
			}
			if cmd.Flags().Changed("need") {
				c.Need = domain.NeedType(need)
			}
			if cmd.Flags().Changed("source") {
				c.Source = domain.Source(source)
			}
			if cmd.Flags().Changed("class") {
				c.Classification = domain.Classification(class)
			}
			if cmd.Flags().Changed("notes") {
				c.Notes = notes
			}

			if err := app.Contacts.Update(ctx, app.Session, c); err != nil {
				return err
			}

			fmt.Printf("Updated contact %s [%s]\n", c.FullName, formatter.ShortID(c.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&address, "address", "", "Street address")
	cmd.Flags().StringVar(&need, "need", "", "Need")
	cmd.Flags().StringVar(&source, "source", "", "Lead source")
	cmd.Flags().StringVar(&class, "class", "", "Classification")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	return cmd
}

// newContactMoveCmd is the non-interactive counterpart of dragging a card
// on the board.
func newContactMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move ID STAGE",
		Short: "Move a contact to another pipeline stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveContactID(ctx, app, args[0])
			if err != nil {
				return err
			}
			target := domain.Stage(args[1])
			if !domain.ValidStage(target) {
				return fmt.Errorf("invalid stage %q (activo|seguimiento|cerrado|inactivo|archivado)", args[1])
			}

			c, err := app.Contacts.GetByID(ctx, app.Session, id)
			if err != nil {
				return err
			}
			t, ok := pipeline.NewTransition(c, target)
			if !ok {
				fmt.Printf("%s is already in %s\n", c.FullName, target)
				return nil
			}

			if err := app.Pipeline.Move(ctx, app.Session, t, time.Now()); err != nil {
				return err
			}

			fmt.Printf("Moved %s: %s → %s\n", c.FullName, t.From, t.To)
			return nil
		},
	}
}

func newContactRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveContactID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Contacts.Delete(ctx, app.Session, id); err != nil {
				return err
			}
			fmt.Printf("Removed contact %s\n", formatter.ShortID(id))
			return nil
		},
	}
}
