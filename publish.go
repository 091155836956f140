package main

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/mgaitan/readeckbot/telegraph"
)

// onPublish compiles the article markdown into a Telegraph node tree and
// publishes it as a page under the user's Telegraph account, creating
// the account on first use.
func (b *botState) onPublish(ctx context.Context, tg *bot.Bot, u *models.Update) {
	q := u.CallbackQuery
	b.answerCallback(ctx, tg, q.ID)

	chatID := callbackChatID(q)
	id := strings.TrimPrefix(q.Data, "pub_")

	token, ok := b.userToken(q.From.ID)
	if !ok {
		b.send(ctx, tg, chatID, noToken)
		return
	}

	md, err := b.readeck.ArticleMarkdown(ctx, token, id)
	if err != nil {
		log.Printf("could not fetch article %s: %v", id, err)
		b.send(ctx, tg, chatID, "Having troubles now... try later.")
		return
	}

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

	accessToken, err := b.telegraphToken(ctx, q.From)
	if err != nil {
		log.Printf("could not prepare telegraph account: %v", err)
		b.send(ctx, tg, chatID, "Could not set up your Telegraph account, try later.")
		return
	}

	nodes := telegraph.FromMarkdown(md)
	nodes = dropLeadingTitle(nodes, title)

	page, err := b.telegraph.CreatePage(ctx, telegraph.PageParams{
		AccessToken: accessToken,
		Title:       title,
		Content:     nodes,
		AuthorName:  strings.Join(bm.Authors, ", "),
		AuthorURL:   bm.URL,
	})
	if err != nil {
		log.Printf("could not publish article %s: %v", id, err)
		b.send(ctx, tg, chatID, "Could not publish the article, try later.")
		return
	}

	log.Printf("published bookmark %s at %s", id, page.URL)
	b.send(ctx, tg, chatID, "Your article is live at: "+page.URL)
}

// telegraphToken returns the user's stored Telegraph access token,
// creating and persisting a fresh account when there is none yet.
func (b *botState) telegraphToken(ctx context.Context, from models.User) (string, error) {
	userID := strconv.FormatInt(from.ID, 10)
	if token, ok := b.accounts.get(userID); ok {
		return token, nil
	}

	name := from.Username
	if name == "" {
		name = userID
	}

	account, err := b.telegraph.CreateAccount(ctx,
		"@"+name+"'s readeckbot blog",
		"@"+name,
		"https://t.me/"+name)
	if err != nil {
		return "", err
	}

	if err := b.accounts.set(userID, account.AccessToken); err != nil {
		return "", err
	}
	return account.AccessToken, nil
}

// dropLeadingTitle removes the first block when it merely repeats the
// page title, which Telegraph already renders as a heading.
func dropLeadingTitle(nodes []telegraph.Node, title string) []telegraph.Node {
	if len(nodes) == 0 {
		return nodes
	}
	first, ok := nodes[0].(telegraph.Element)
	if !ok {
		return nodes
	}
	for _, child := range first.Children {
		if text, ok := child.(telegraph.Text); ok && string(text) == title {
			return nodes[1:]
		}
	}
	return nodes
}
