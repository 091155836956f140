package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"

	"github.com/go-telegram/bot"
	"github.com/k0kubun/pp"
	"github.com/pkg/errors"

	"github.com/mgaitan/readeckbot/readeck"
	"github.com/mgaitan/readeckbot/telegraph"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the configuration file")
	debug := flag.Bool("debug", false, "dump the loaded configuration on startup")
	flag.Parse()

	cfg, err := config(*configPath)
	if err != nil {
		log.Fatalln(err)
	}
	if cfg.Token == "" {
		log.Fatal("no telegram token provided")
	}
	if *debug {
		pp.Println(cfg)
	}

	b := &botState{
		cfg:       cfg,
		readeck:   readeck.New(cfg.ReadeckURL, http.DefaultClient),
		telegraph: telegraph.NewClient(http.DefaultClient),
		tokens:    openStore(cfg.TokenFile),
		accounts:  openStore(cfg.TelegraphFile),
	}

	tg, err := bot.New(cfg.Token, bot.WithDefaultHandler(b.onMessage))
	if err != nil {
		log.Fatalln(errors.Wrap(err, "could not open session"))
	}

	tg.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, b.onHelp)
	tg.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypePrefix, b.onHelp)
	tg.RegisterHandler(bot.HandlerTypeMessageText, "/token", bot.MatchTypePrefix, b.onToken)
	tg.RegisterHandler(bot.HandlerTypeMessageText, "/register", bot.MatchTypePrefix, b.onRegister)
	tg.RegisterHandler(bot.HandlerTypeMessageText, "/search", bot.MatchTypePrefix, b.onSearch)
	tg.RegisterHandler(bot.HandlerTypeMessageText, "/unarchived", bot.MatchTypePrefix, b.onUnarchived)
	tg.RegisterHandler(bot.HandlerTypeMessageText, "/epub", bot.MatchTypePrefix, b.onEpub)
	tg.RegisterHandler(bot.HandlerTypeMessageText, "/info", bot.MatchTypePrefix, b.onInfo)

	tg.RegisterHandler(bot.HandlerTypeCallbackQueryData, "read_", bot.MatchTypePrefix, b.onRead)
	tg.RegisterHandler(bot.HandlerTypeCallbackQueryData, "pub_", bot.MatchTypePrefix, b.onPublish)
	tg.RegisterHandler(bot.HandlerTypeCallbackQueryData, "epub_", bot.MatchTypePrefix, b.onEpubCallback)
	tg.RegisterHandler(bot.HandlerTypeCallbackQueryData, "archive_", bot.MatchTypePrefix, b.onArchive)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	log.Println("readeckbot connected, polling for updates")
	tg.Start(ctx)
}
