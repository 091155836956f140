package main

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/mgaitan/readeckbot/readeck"
	"github.com/mgaitan/readeckbot/telegraph"
)

type botState struct {
	cfg       configuration
	readeck   *readeck.Client
	telegraph *telegraph.Client

	// tokens maps Telegram user IDs to Readeck API tokens; accounts maps
	// them to Telegraph access tokens.
	tokens   *store
	accounts *store
}

const helpText = `Hi! Send me a URL to save it on Readeck.

To configure your Readeck credentials use one of:
• /token <YOUR_READECK_TOKEN>
• /register <password>  (your Telegram user ID is used as username)

Then:
• /search <query> — search your bookmarks
• /unarchived — list unread bookmarks
• /epub — export unread bookmarks as one epub and archive them`

const noToken = "I don't have your Readeck token. Set it with /token <YOUR_TOKEN> or /register <password>."

func (b *botState) onHelp(ctx context.Context, tg *bot.Bot, u *models.Update) {
	log.Printf("user %d started the bot", u.Message.From.ID)
	b.send(ctx, tg, u.Message.Chat.ID, helpText)
}

func (b *botState) onToken(ctx context.Context, tg *bot.Bot, u *models.Update) {
	fields := strings.Fields(u.Message.Text)
	if len(fields) != 2 {
		b.send(ctx, tg, u.Message.Chat.ID, "Usage: /token <YOUR_READECK_TOKEN>")
		return
	}

	userID := strconv.FormatInt(u.Message.From.ID, 10)
	if err := b.tokens.set(userID, fields[1]); err != nil {
		log.Printf("could not save token for user %s: %v", userID, err)
		b.send(ctx, tg, u.Message.Chat.ID, "Could not save your token, try again later.")
		return
	}
	log.Printf("set token for user %s", userID)
	b.send(ctx, tg, u.Message.Chat.ID, "Your Readeck token has been saved.")
}

func (b *botState) onRegister(ctx context.Context, tg *bot.Bot, u *models.Update) {
	fields := strings.Fields(u.Message.Text)

	var username, password string
	switch len(fields) {
	case 2:
		username = strconv.FormatInt(u.Message.From.ID, 10)
		password = fields[1]
	case 3:
		username, password = fields[1], fields[2]
	default:
		b.send(ctx, tg, u.Message.Chat.ID,
			"Usage: /register <user> <password>\nor /register <password> (your Telegram user ID will be used as username).")
		return
	}

	if err := b.registerUser(ctx, username, password); err != nil {
		log.Printf("registration failed for %s: %v", username, err)
		b.send(ctx, tg, u.Message.Chat.ID, "Registration failed: "+err.Error())
		return
	}

	token, err := b.readeck.Auth(ctx, username, password, "telegram bot")
	if err != nil {
		log.Printf("auth failed for %s: %v", username, err)
		b.send(ctx, tg, u.Message.Chat.ID, "Registration succeeded but failed to retrieve token.")
		return
	}

	userID := strconv.FormatInt(u.Message.From.ID, 10)
	if err := b.tokens.set(userID, token); err != nil {
		log.Printf("could not save token for user %s: %v", userID, err)
		b.send(ctx, tg, u.Message.Chat.ID, "Could not save your token, try again later.")
		return
	}
	b.send(ctx, tg, u.Message.Chat.ID, "Registration successful! Your token has been saved.")
}

// registerUser creates a Readeck user with the readeck CLI, falling back
// to the official docker image when the binary is not available.
func (b *botState) registerUser(ctx context.Context, username, password string) error {
	args := []string{"user"}
	if b.cfg.ReadeckConfig != "" {
		args = append(args, "-config", b.cfg.ReadeckConfig)
	}
	args = append(args, "-u", username, "-p", password)

	cmd := exec.CommandContext(ctx, "readeck", args...)
	if b.cfg.ReadeckData != "" {
		cmd.Dir = filepath.Dir(b.cfg.ReadeckData)
	}

	log.Printf("registering user %q with the readeck CLI", username)
	if err := cmd.Run(); err == nil {
		return nil
	}

	log.Printf("readeck CLI failed, retrying with docker")
	docker := exec.CommandContext(ctx, "docker", "run", "codeberg.org/readeck/readeck:latest",
		"readeck", "user", "-u", username, "-p", password)
	if out, err := docker.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w", strings.TrimSpace(string(out)), err)
	}
	return nil
}

func (b *botState) onSearch(ctx context.Context, tg *bot.Bot, u *models.Update) {
	query := strings.TrimSpace(strings.TrimPrefix(u.Message.Text, "/search"))
	if query == "" {
		b.send(ctx, tg, u.Message.Chat.ID, "Please provide a search query.")
		return
	}

	token, ok := b.userToken(u.Message.From.ID)
	if !ok {
		b.send(ctx, tg, u.Message.Chat.ID, noToken)
		return
	}

	bookmarks, err := b.readeck.Bookmarks(ctx, token, readeck.ListOptions{Search: query})
	if err != nil {
		log.Printf("search(%q) failed: %v", query, err)
		b.send(ctx, tg, u.Message.Chat.ID, "Having troubles now... try later.")
		return
	}
	if len(bookmarks) == 0 {
		b.send(ctx, tg, u.Message.Chat.ID, "No bookmarks found.")
		return
	}
	b.sendMarkdown(ctx, tg, u.Message.Chat.ID, formatBookmarks(bookmarks))
}

func (b *botState) onUnarchived(ctx context.Context, tg *bot.Bot, u *models.Update) {
	token, ok := b.userToken(u.Message.From.ID)
	if !ok {
		b.send(ctx, tg, u.Message.Chat.ID, noToken)
		return
	}

	archived := false
	bookmarks, err := b.readeck.Bookmarks(ctx, token, readeck.ListOptions{IsArchived: &archived})
	if err != nil {
		log.Printf("unarchived list failed: %v", err)
		b.send(ctx, tg, u.Message.Chat.ID, "Having troubles now... try later.")
		return
	}
	if len(bookmarks) == 0 {
		b.send(ctx, tg, u.Message.Chat.ID, "No unarchived bookmarks found.")
		return
	}
	b.sendMarkdown(ctx, tg, u.Message.Chat.ID, formatBookmarks(bookmarks))
}

var detailre = regexp.MustCompile(`^/b_(\w+)`)

// onMessage handles non-command text: /b_<id> detail shortcuts and
// messages carrying a URL to bookmark.
func (b *botState) onMessage(ctx context.Context, tg *bot.Bot, u *models.Update) {
	if u.Message == nil || u.Message.From == nil {
		return
	}

	token, ok := b.userToken(u.Message.From.ID)
	if !ok {
		b.send(ctx, tg, u.Message.Chat.ID, noToken)
		return
	}

	if m := detailre.FindStringSubmatch(u.Message.Text); m != nil {
		b.replyDetails(ctx, tg, u.Message.Chat.ID, token, m[1])
		return
	}

	link, title, labels := extractURL(u.Message.Text)
	if link == "" {
		// Text links carry their URL in the entity, not the text.
		for _, ent := range u.Message.Entities {
			if ent.Type == models.MessageEntityTypeTextLink {
				link = ent.URL
				break
			}
		}
	}
	if link == "" {
		b.send(ctx, tg, u.Message.Chat.ID, "Send me a URL to save it on Readeck, or /help for usage.")
		return
	}

	id, err := b.readeck.Save(ctx, token, normalizeURL(link), title, labels)
	if err != nil {
		log.Printf("could not save bookmark: %v", err)
		b.send(ctx, tg, u.Message.Chat.ID, "Having troubles now... try later.")
		return
	}
	log.Printf("saved bookmark %s", id)
	b.replyDetails(ctx, tg, u.Message.Chat.ID, token, id)
}

func (b *botState) userToken(userID int64) (string, bool) {
	return b.tokens.get(strconv.FormatInt(userID, 10))
}

func (b *botState) send(ctx context.Context, tg *bot.Bot, chatID int64, text string) {
	if _, err := tg.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		log.Printf("could not send message: %v", err)
	}
}

func (b *botState) sendMarkdown(ctx context.Context, tg *bot.Bot, chatID int64, text string) {
	_, err := tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdown,
	})
	if err != nil {
		log.Printf("could not send message: %v", err)
	}
}
