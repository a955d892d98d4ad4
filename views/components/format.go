package components

import (
	"fmt"
	"strconv"
	"time"
)

const timeLayout = "Jan 2, 2006 3:04:05 PM"

func formatTime(t time.Time) string {
	return t.Local().Format(timeLayout)
}

func noticeClass(severity string) string {
	if severity == "" {
		return "message-box"
	}
	return "message-box " + severity
}

// pollTrigger is the hx-trigger value that re-fetches the note list.
func pollTrigger(ms int64) string {
	return "every " + strconv.FormatInt(ms, 10) + "ms"
}

func noteURL(id int64) string {
	return "/fragments/notes/" + strconv.FormatInt(id, 10)
}

func editURL(id int64) string {
	return noteURL(id) + "/edit"
}

func deletePrompt(id int64) string {
	return fmt.Sprintf("Delete note ID: %d?", id)
}
