package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/mgaitan/readeckbot/readeck"
)

// onEpubCallback sends a single bookmark as an epub document.
func (b *botState) onEpubCallback(ctx context.Context, tg *bot.Bot, u *models.Update) {
	q := u.CallbackQuery
	b.answerCallback(ctx, tg, q.ID)

	chatID := callbackChatID(q)
	id := strings.TrimPrefix(q.Data, "epub_")

	token, ok := b.userToken(q.From.ID)
	if !ok {
		b.send(ctx, tg, chatID, noToken)
		return
	}

	epub, err := b.readeck.ArticleEpub(ctx, token, id)
	if err != nil {
		log.Printf("could not fetch epub for %s: %v", id, err)
		b.send(ctx, tg, chatID, "Having troubles now... try later.")
		return
	}
	b.sendDocument(ctx, tg, chatID, id+".epub", epub)
}

// onEpub exports every unread bookmark as a single epub, sends it, and
// archives the exported bookmarks.
func (b *botState) onEpub(ctx context.Context, tg *bot.Bot, u *models.Update) {
	chatID := u.Message.Chat.ID

	token, ok := b.userToken(u.Message.From.ID)
	if !ok {
		b.send(ctx, tg, chatID, noToken)
		return
	}

	archived := false
	opts := readeck.ListOptions{IsArchived: &archived}

	bookmarks, err := b.readeck.Bookmarks(ctx, token, opts)
	if err != nil {
		log.Printf("could not list unread bookmarks: %v", err)
		b.send(ctx, tg, chatID, "Having troubles now... try later.")
		return
	}
	if len(bookmarks) == 0 {
		b.send(ctx, tg, chatID, "There are no unread bookmarks.")
		return
	}

	b.send(ctx, tg, chatID, fmt.Sprintf("Found %d unread bookmarks. Downloading epub.", len(bookmarks)))

	epub, err := b.readeck.ExportEpub(ctx, token, opts)
	if err != nil {
		log.Printf("could not export epub: %v", err)
		b.send(ctx, tg, chatID, "Having troubles now... try later.")
		return
	}
	b.sendDocument(ctx, tg, chatID, "bookmarks.epub", epub)

	for _, bm := range bookmarks {
		if err := b.readeck.Archive(ctx, token, bm.ID); err != nil {
			log.Printf("could not archive bookmark %s: %v", bm.ID, err)
		}
	}
}

func (b *botState) sendDocument(ctx context.Context, tg *bot.Bot, chatID int64, filename string, data []byte) {
	_, err := tg.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID: chatID,
		Document: &models.InputFileUpload{
			Filename: filename,
			Data:     bytes.NewReader(data),
		},
		Caption: "Here is your epub file.",
	})
	if err != nil {
		log.Printf("could not send document: %v", err)
	}
}
