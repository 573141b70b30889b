package client

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/pswdapp/vaultcore/models"
)

// promptLine prints label and reads one line of input. The buffered reader
// is shared across prompts so piped input survives between calls.
func (a *App) promptLine(label string) (string, error) {
	fmt.Fprint(a.out, label)
	line, err := a.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptSecret reads a line without echoing when stdin is a terminal.
// Non-terminal input (pipes, tests) falls back to a plain line read.
func (a *App) promptSecret(label string) (string, error) {
	file, ok := a.in.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return a.promptLine(label)
	}

	fmt.Fprint(a.out, label)
	secret, err := term.ReadPassword(int(file.Fd()))
	fmt.Fprintln(a.out)
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return string(secret), nil
}

// promptNewPassword asks for a password twice and rejects a mismatch.
func (a *App) promptNewPassword(label string) (string, error) {
	first, err := a.promptSecret(label)
	if err != nil {
		return "", err
	}
	second, err := a.promptSecret("Repeat to confirm: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", fmt.Errorf("passwords do not match")
	}
	return first, nil
}

// promptPayload collects the payload fields for the given entry type.
func (a *App) promptPayload(entryType string) (models.EntryPayload, error) {
	switch entryType {
	case models.EntryTypePassword:
		username, err := a.promptLine("Login username: ")
		if err != nil {
			return models.EntryPayload{}, err
		}
		password, err := a.promptSecret("Login password: ")
		if err != nil {
			return models.EntryPayload{}, err
		}
		url, err := a.promptLine("URL (optional): ")
		if err != nil {
			return models.EntryPayload{}, err
		}
		notes, err := a.promptLine("Notes (optional): ")
		if err != nil {
			return models.EntryPayload{}, err
		}
		return models.EntryPayload{Login: &models.LoginPayload{
			Username: username,
			Password: password,
			URL:      url,
			Notes:    notes,
		}}, nil

	case models.EntryTypeNote:
		text, err := a.promptLine("Note text: ")
		if err != nil {
			return models.EntryPayload{}, err
		}
		return models.EntryPayload{Note: &models.NotePayload{Text: text}}, nil

	case models.EntryTypeCard:
		holder, err := a.promptLine("Cardholder name: ")
		if err != nil {
			return models.EntryPayload{}, err
		}
		number, err := a.promptSecret("Card number: ")
		if err != nil {
			return models.EntryPayload{}, err
		}
		month, err := a.promptLine("Expiry month (MM): ")
		if err != nil {
			return models.EntryPayload{}, err
		}
		year, err := a.promptLine("Expiry year (YYYY): ")
		if err != nil {
			return models.EntryPayload{}, err
		}
		code, err := a.promptSecret("Security code: ")
		if err != nil {
			return models.EntryPayload{}, err
		}
		return models.EntryPayload{Card: &models.CardPayload{
			CardholderName: holder,
			Number:         number,
			ExpMonth:       month,
			ExpYear:        year,
			Code:           code,
		}}, nil

	default:
		return models.EntryPayload{}, fmt.Errorf("unknown entry type %q", entryType)
	}
}
