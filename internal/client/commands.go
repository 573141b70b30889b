package client

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/atotto/clipboard"

	"github.com/pswdapp/vaultcore/models"
)

func (a *App) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(a.out)
	username := fs.String("u", "", "account username")
	email := fs.String("e", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		return fmt.Errorf("register: -u <username> is required")
	}

	password, err := a.promptNewPassword("Master password: ")
	if err != nil {
		return err
	}

	account, err := a.services.Registration.Register(ctx, *username, *email, password)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if err = a.services.Auth.Login(ctx); err != nil {
		return fmt.Errorf("register: login after registration: %w", err)
	}

	fmt.Fprintf(a.out, "Account %q created, this device is the master device.\n", account.Username)
	return nil
}

func (a *App) cmdAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(a.out)
	title := fs.String("t", "", "entry title")
	entryType := fs.String("type", models.EntryTypePassword, "entry type: password, note or card")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *title == "" {
		return fmt.Errorf("add: -t <title> is required")
	}

	payload, err := a.promptPayload(*entryType)
	if err != nil {
		return err
	}
	if err = a.connect(ctx); err != nil {
		return err
	}

	entry, err := a.services.Entries.Create(ctx, *title, *entryType, payload)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}

	fmt.Fprintf(a.out, "Added %q (%s)\n", entry.Title, entry.EntryID)
	return nil
}

func (a *App) cmdGet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	fs.SetOutput(a.out)
	title := fs.String("t", "", "entry title")
	entryID := fs.String("id", "", "entry id")
	copySecret := fs.Bool("copy", false, "copy the secret to the clipboard instead of printing it")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *title == "" && *entryID == "" {
		return fmt.Errorf("get: -t <title> or -id <id> is required")
	}

	if err := a.unlock(ctx); err != nil {
		return err
	}

	var (
		entry   models.VaultEntry
		payload models.EntryPayload
		err     error
	)
	if *entryID != "" {
		entry, payload, err = a.services.Entries.Get(ctx, *entryID)
	} else {
		entry, payload, err = a.services.Entries.GetByTitle(ctx, *title)
	}
	if err != nil {
		return fmt.Errorf("get: %w", err)
	}

	if *copySecret {
		secret := primarySecret(payload)
		if secret == "" {
			return fmt.Errorf("get: entry %q has no copyable secret", entry.Title)
		}
		if err = clipboard.WriteAll(secret); err != nil {
			return fmt.Errorf("get: copy to clipboard: %w", err)
		}
		fmt.Fprintf(a.out, "Secret for %q copied to clipboard.\n", entry.Title)
		return nil
	}

	printEntry(a.out, entry, payload)
	return nil
}

func (a *App) cmdList(ctx context.Context) error {
	entries, err := a.services.Entries.List(ctx)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No entries.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tTYPE\tUPDATED")
	for _, e := range entries {
		updated := ""
		if !e.UpdatedAt.IsZero() {
			updated = e.UpdatedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.EntryID, e.Title, e.EntryType, updated)
	}
	return tw.Flush()
}

func (a *App) cmdEdit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.SetOutput(a.out)
	entryID := fs.String("id", "", "entry id")
	title := fs.String("t", "", "entry title")
	entryType := fs.String("type", models.EntryTypePassword, "entry type: password, note or card")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *entryID == "" {
		return fmt.Errorf("edit: -id <id> is required")
	}
	if *title == "" {
		return fmt.Errorf("edit: -t <title> is required")
	}

	payload, err := a.promptPayload(*entryType)
	if err != nil {
		return err
	}
	if err = a.connect(ctx); err != nil {
		return err
	}

	if err = a.services.Entries.Update(ctx, *entryID, *title, *entryType, payload); err != nil {
		return fmt.Errorf("edit: %w", err)
	}

	fmt.Fprintf(a.out, "Updated %q\n", *title)
	return nil
}

func (a *App) cmdRemove(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rm", flag.ContinueOnError)
	fs.SetOutput(a.out)
	title := fs.String("t", "", "entry title")
	entryID := fs.String("id", "", "entry id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *title == "" && *entryID == "" {
		return fmt.Errorf("rm: -t <title> or -id <id> is required")
	}

	if err := a.connect(ctx); err != nil {
		return err
	}

	id := *entryID
	if id == "" {
		entry, _, err := a.services.Entries.GetByTitle(ctx, *title)
		if err != nil {
			return fmt.Errorf("rm: %w", err)
		}
		id = entry.EntryID
	}

	if err := a.services.Entries.Delete(ctx, id); err != nil {
		return fmt.Errorf("rm: %w", err)
	}

	fmt.Fprintf(a.out, "Removed %s\n", id)
	return nil
}

func (a *App) cmdSync(ctx context.Context) error {
	if err := a.connect(ctx); err != nil {
		return err
	}
	if err := a.services.Entries.Refresh(ctx); err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	entries, err := a.services.Entries.List(ctx)
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	fmt.Fprintf(a.out, "Synced, %d entries in the local vault.\n", len(entries))
	return nil
}

func (a *App) cmdDevices(ctx context.Context) error {
	if err := a.connect(ctx); err != nil {
		return err
	}

	pending, err := a.services.DeviceTrust.Pending(ctx)
	if err != nil {
		return fmt.Errorf("devices: %w", err)
	}
	if len(pending) == 0 {
		fmt.Fprintln(a.out, "No devices awaiting approval.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DEVICE ID\tNAME\tFINGERPRINT")
	for _, d := range pending {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", d.DeviceID, d.Name, d.Fingerprint)
	}
	return tw.Flush()
}

func (a *App) cmdApprove(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("approve", flag.ContinueOnError)
	fs.SetOutput(a.out)
	deviceID := fs.String("d", "", "pending device id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *deviceID == "" {
		return fmt.Errorf("approve: -d <device-id> is required")
	}

	if err := a.connect(ctx); err != nil {
		return err
	}
	if err := a.services.DeviceTrust.Approve(ctx, *deviceID); err != nil {
		return fmt.Errorf("approve: %w", err)
	}

	fmt.Fprintf(a.out, "Device %s approved.\n", *deviceID)
	return nil
}

func (a *App) cmdEnroll(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("enroll", flag.ContinueOnError)
	fs.SetOutput(a.out)
	username := fs.String("u", "", "account username")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		return fmt.Errorf("enroll: -u <username> is required")
	}

	passphrase, err := a.promptNewPassword("Local passphrase for this device: ")
	if err != nil {
		return err
	}

	identity, err := a.services.DeviceTrust.RequestApproval(ctx, *username, passphrase)
	if err != nil {
		return fmt.Errorf("enroll: %w", err)
	}
	fmt.Fprintf(a.out, "Device registered as %s (fingerprint %s).\n", identity.DeviceID, identity.Fingerprint)
	fmt.Fprintln(a.out, "Approve it from the master device; waiting...")

	delivery, err := a.services.DeviceTrust.WaitForApproval(ctx)
	if err != nil {
		return fmt.Errorf("enroll: wait for approval: %w", err)
	}
	if err = a.services.DeviceTrust.CompleteApproval(ctx, delivery, passphrase); err != nil {
		return fmt.Errorf("enroll: complete approval: %w", err)
	}

	if err = a.services.Auth.Login(ctx); err != nil {
		return fmt.Errorf("enroll: login: %w", err)
	}
	if err = a.services.Entries.Refresh(ctx); err != nil {
		return fmt.Errorf("enroll: initial sync: %w", err)
	}

	entries, err := a.services.Entries.List(ctx)
	if err != nil {
		return fmt.Errorf("enroll: %w", err)
	}
	fmt.Fprintf(a.out, "Device approved, %d entries synced. Unlock with the local passphrase from now on.\n", len(entries))
	return nil
}

// primarySecret picks the field worth putting on the clipboard for each
// payload shape.
func primarySecret(payload models.EntryPayload) string {
	switch {
	case payload.Login != nil:
		return payload.Login.Password
	case payload.Card != nil:
		return payload.Card.Number
	case payload.Note != nil:
		return payload.Note.Text
	}
	return ""
}

func printEntry(w io.Writer, entry models.VaultEntry, payload models.EntryPayload) {
	fmt.Fprintf(w, "Title: %s\nType:  %s\nID:    %s\n", entry.Title, entry.EntryType, entry.EntryID)
	switch {
	case payload.Login != nil:
		fmt.Fprintf(w, "Username: %s\nPassword: %s\n", payload.Login.Username, payload.Login.Password)
		if payload.Login.URL != "" {
			fmt.Fprintf(w, "URL: %s\n", payload.Login.URL)
		}
		if payload.Login.Notes != "" {
			fmt.Fprintf(w, "Notes: %s\n", payload.Login.Notes)
		}
	case payload.Note != nil:
		fmt.Fprintf(w, "Text: %s\n", payload.Note.Text)
	case payload.Card != nil:
		fmt.Fprintf(w, "Cardholder: %s\nNumber: %s\nExpires: %s/%s\nCode: %s\n",
			payload.Card.CardholderName, payload.Card.Number,
			payload.Card.ExpMonth, payload.Card.ExpYear, payload.Card.Code)
	}
}
