package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// replyDetails sends the bookmark detail card with its action keyboard.
func (b *botState) replyDetails(ctx context.Context, tg *bot.Bot, chatID int64, token, id string) {
	bm, err := b.readeck.Bookmark(ctx, token, id)
	if err != nil {
		log.Printf("could not fetch bookmark %s: %v", id, err)
		b.send(ctx, tg, chatID, "Having troubles now... try later.")
		return
	}

	title := bm.Title
	if title == "" {
		title = bm.URL
	}

	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "Read", CallbackData: "read_" + id},
				{Text: "Publish", CallbackData: "pub_" + id},
			},
			{
				{Text: "Epub", CallbackData: "epub_" + id},
				{Text: "Archive", CallbackData: "archive_" + id},
			},
		},
	}

	_, err = tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        fmt.Sprintf("[%s](%s)", bot.EscapeMarkdown(title), bm.URL),
		ParseMode:   models.ParseModeMarkdown,
		ReplyMarkup: keyboard,
	})
	if err != nil {
		log.Printf("could not send detail card: %v", err)
	}
}

func (b *botState) onArchive(ctx context.Context, tg *bot.Bot, u *models.Update) {
	q := u.CallbackQuery
	b.answerCallback(ctx, tg, q.ID)

	id := strings.TrimPrefix(q.Data, "archive_")
	chatID := callbackChatID(q)

	token, ok := b.userToken(q.From.ID)
	if !ok {
		b.send(ctx, tg, chatID, noToken)
		return
	}

	if err := b.readeck.Archive(ctx, token, id); err != nil {
		log.Printf("could not archive bookmark %s: %v", id, err)
		b.send(ctx, tg, chatID, "Having troubles now... try later.")
		return
	}
	log.Printf("archived bookmark %s", id)
	b.send(ctx, tg, chatID, "This bookmark has been archived.")
}

func (b *botState) answerCallback(ctx context.Context, tg *bot.Bot, id string) {
	if _, err := tg.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: id}); err != nil {
		log.Printf("could not answer callback: %v", err)
	}
}

func callbackChatID(q *models.CallbackQuery) int64 {
	if q.Message.Message != nil {
		return q.Message.Message.Chat.ID
	}
	if q.Message.InaccessibleMessage != nil {
		return q.Message.InaccessibleMessage.Chat.ID
	}
	return 0
}
