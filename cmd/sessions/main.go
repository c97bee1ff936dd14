// Command sessions lists the upload sessions recorded by the badger tracker.
// It opens the database read-only, so it can run next to a live server.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"time"

	"filedrop/domain"
	"filedrop/infrastructure/storage"
	"filedrop/runtime"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", "./data/sessions", "Path to the tracker badger directory")
	staleAfter := flag.Duration("stale", 24*time.Hour, "Idle duration after which a session is flagged stale")
	flag.Parse()

	db, err := badger.Open(badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	tracker := storage.NewBadgerSessionTracker(db, runtime.NewLockTable(1), slog.New(slog.NewTextHandler(io.Discard, nil)), 0)
	sessions, err := tracker.Sessions(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	render(os.Stdout, sessions, time.Now(), *staleAfter)
}

func render(w io.Writer, sessions []domain.SessionState, now time.Time, staleAfter time.Duration) {
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.Before(sessions[j].UpdatedAt)
	})

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Session", "State", "Received", "Updated", "Idle"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, session := range sessions {
		idle := now.Sub(session.UpdatedAt).Truncate(time.Second)
		table.Append([]string{
			string(session.SessionID),
			state(session, idle, staleAfter),
			strconv.Itoa(len(session.Received)) + "/" + strconv.Itoa(session.TotalChunks),
			session.UpdatedAt.Local().Format(time.DateTime),
			idle.String(),
		})
	}
	table.Render()
	fmt.Fprintf(w, "\n%d session(s)\n", len(sessions))
}

func state(session domain.SessionState, idle, staleAfter time.Duration) string {
	switch {
	case session.Assembling:
		return color.Yellow.Sprint("assembling")
	case idle > staleAfter:
		return color.Red.Sprint("stale")
	default:
		return color.Green.Sprint("pending")
	}
}
