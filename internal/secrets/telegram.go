package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// Service groups this app's secrets in the OS keychain.
	KeyringService = "jobwatch"

	tokenAccount  = "telegram-bot-token"
	chatIDAccount = "telegram-chat-id"

	TokenEnv  = "TELEGRAM_BOT_TOKEN"
	ChatIDEnv = "TELEGRAM_CHAT_ID"
)

// Credentials carries everything needed to talk to the Telegram bot API.
type Credentials struct {
	BotToken string
	ChatID   string
}

// Resolve reads the Telegram credentials: environment first (CI, scheduler),
// OS keychain second (local runs). Missing credentials are the one fatal
// startup condition, so the error spells out where to put them.
func Resolve() (Credentials, error) {
	token := lookup(TokenEnv, tokenAccount)
	chatID := lookup(ChatIDEnv, chatIDAccount)

	if token == "" || chatID == "" {
		return Credentials{}, errors.New(
			"Telegram credentials missing: set " + TokenEnv + " and " + ChatIDEnv +
				" in the environment, or store them in the keychain with jobwatch -setup")
	}
	return Credentials{BotToken: token, ChatID: chatID}, nil
}

func lookup(envKey, account string) string {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v
	}
	if v, err := keyring.Get(KeyringService, account); err == nil {
		return strings.TrimSpace(v)
	}
	return ""
}

// Store saves the credentials currently present in the environment into the
// OS keychain so later runs work without env vars.
func Store() error {
	token := strings.TrimSpace(os.Getenv(TokenEnv))
	chatID := strings.TrimSpace(os.Getenv(ChatIDEnv))
	if token == "" || chatID == "" {
		return errors.New(TokenEnv + " and " + ChatIDEnv + " must both be set to run -setup")
	}
	if err := keyring.Set(KeyringService, tokenAccount, token); err != nil {
		return err
	}
	return keyring.Set(KeyringService, chatIDAccount, chatID)
}

// Clear removes both credentials from the OS keychain.
func Clear() error {
	if err := keyring.Delete(KeyringService, tokenAccount); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	if err := keyring.Delete(KeyringService, chatIDAccount); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}
