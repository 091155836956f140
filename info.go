package main

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

var started = time.Now()

func (b *botState) onInfo(ctx context.Context, tg *bot.Bot, u *models.Update) {
	stats := runtime.MemStats{}
	runtime.ReadMemStats(&stats)

	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, "Go: %s\n", runtime.Version())
	fmt.Fprintf(buf, "Uptime: %s\n", humanize.Time(started))
	fmt.Fprintf(buf, "Memory: %s / %s (alloc / sys)\n", humanize.Bytes(stats.Alloc), humanize.Bytes(stats.Sys))
	fmt.Fprintf(buf, "Concurrent Tasks: %s\n", humanize.Comma(int64(runtime.NumGoroutine())))
	fmt.Fprintf(buf, "Source: %s\n", "https://github.com/mgaitan/readeckbot")

	b.send(ctx, tg, u.Message.Chat.ID, buf.String())
}
