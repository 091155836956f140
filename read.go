package main

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// onRead pages through an article one sentence-aligned chunk per
// message. The callback data is read_<id> for the first page and
// read_<id>_<n> afterwards.
func (b *botState) onRead(ctx context.Context, tg *bot.Bot, u *models.Update) {
	q := u.CallbackQuery
	b.answerCallback(ctx, tg, q.ID)

	chatID := callbackChatID(q)

	parts := strings.Split(strings.TrimPrefix(q.Data, "read_"), "_")
	id := parts[0]
	page := 0
	if len(parts) > 1 {
		page, _ = strconv.Atoi(parts[1])
	}

	token, ok := b.userToken(q.From.ID)
	if !ok {
		b.send(ctx, tg, chatID, noToken)
		return
	}

	text, err := b.readeck.ArticleText(ctx, token, id)
	if err != nil {
		log.Printf("could not fetch article %s: %v", id, err)
		b.send(ctx, tg, chatID, "Having troubles now... try later.")
		return
	}

	chunks := chunker(text, msgLimit)
	if len(chunks) == 0 {
		b.send(ctx, tg, chatID, "This article has no text content.")
		return
	}
	if page >= len(chunks) {
		page = len(chunks) - 1
	}

	var button models.InlineKeyboardButton
	if page < len(chunks)-1 {
		button = models.InlineKeyboardButton{
			Text:         "Next",
			CallbackData: "read_" + id + "_" + strconv.Itoa(page+1),
		}
	} else {
		button = models.InlineKeyboardButton{
			Text:         "Archive",
			CallbackData: "archive_" + id,
		}
	}

	_, err = tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   chunks[page],
		ReplyMarkup: &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{{button}},
		},
	})
	if err != nil {
		log.Printf("could not send article chunk: %v", err)
	}
}
