package storage

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/mama165/sdk-go/database"
)

// SessionMapper renders tracker entries for the badger debug inspector.
func SessionMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)

	switch {
	case strings.HasPrefix(key, claimPrefix):
		row.Type = "CLAIM"
		row.EntityID = strings.TrimPrefix(key, claimPrefix)
		describeMeta(&row, val)
	case strings.HasPrefix(key, donePrefix):
		row.Type = "DONE"
		row.EntityID = strings.TrimPrefix(key, donePrefix)
		row.Detail = "assembled"
	case strings.HasPrefix(key, sessionPrefix) && strings.HasSuffix(key, ":meta"):
		row.Type = "SESSION"
		row.EntityID = strings.TrimSuffix(strings.TrimPrefix(key, sessionPrefix), ":meta")
		describeMeta(&row, val)
	case strings.HasPrefix(key, sessionPrefix) && strings.Contains(key, ":chunk:"):
		row.Type = "CHUNK"
		rest := strings.TrimPrefix(key, sessionPrefix)
		id, index, _ := strings.Cut(rest, ":chunk:")
		row.EntityID = id
		row.Detail = "index " + index
	}
	return row
}

func describeMeta(row *database.InspectRow, val []byte) {
	var meta sessionMeta
	if err := json.Unmarshal(val, &meta); err != nil {
		row.Detail = "Error: unmarshal failed"
		return
	}
	row.Timestamp = meta.UpdatedAt.Format("15:04:05")
	row.Detail = strconv.Itoa(meta.Received) + "/" + strconv.Itoa(meta.TotalChunks) + " chunks"
}
