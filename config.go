package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

type configuration struct {
	// Token is the Telegram bot token.
	Token string `json:"token"`

	// ReadeckURL is the base URL of the Readeck instance.
	ReadeckURL string `json:"readeck_url"`

	// ReadeckConfig and ReadeckData are passed through to the readeck
	// CLI when registering new users with /register.
	ReadeckConfig string `json:"readeck_config,omitempty"`
	ReadeckData   string `json:"readeck_data,omitempty"`

	// TokenFile and TelegraphFile hold the per-user credential maps.
	TokenFile     string `json:"token_file"`
	TelegraphFile string `json:"telegraph_file"`
}

func config(path string) (configuration, error) {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return configuration{}, errors.Wrap(err, "could not open config")
	}
	return configFromBytes(fileBytes)
}

func configFromBytes(fileBytes []byte) (configuration, error) {
	config := configuration{
		ReadeckURL:    "http://localhost:8000",
		TokenFile:     ".user_tokens.json",
		TelegraphFile: ".user_telegraph.json",
	}
	if err := json.Unmarshal(fileBytes, &config); err != nil {
		return configuration{}, errors.Wrap(err, "could not parse config")
	}
	return config, nil
}
