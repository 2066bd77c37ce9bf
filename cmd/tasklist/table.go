package main

import (
	"strings"
	"time"
	"unicode/utf8"

	"tasklist/model"
)

const (
	taskTextMaxWidth = 50
	taskTextEllipsis = "..."
	columnGap        = 2
)

// taskColumn is one column of the list table.
type taskColumn struct {
	header string
	value  func(model.Task) string
}

func taskColumns(highlight func(string) string) []taskColumn {
	return []taskColumn{
		{header: "ID", value: func(t model.Task) string { return highlight(t.ID) }},
		{header: "STATUS", value: taskStatus},
		{header: "PRIORITY", value: func(t model.Task) string { return string(t.Priority) }},
		{header: "CREATED", value: func(t model.Task) string { return t.CreatedAt.UTC().Format(time.DateTime) }},
		{header: "TEXT", value: func(t model.Task) string { return singleLine(t.Text, taskTextMaxWidth) }},
	}
}

// formatTaskTable renders one row per task under a header row. Columns are
// padded to their widest visible cell; the last column is not padded.
func formatTaskTable(tasks []model.Task, highlight func(string) string) string {
	columns := taskColumns(highlight)

	headers := make([]string, len(columns))
	widths := make([]int, len(columns))
	for i, col := range columns {
		headers[i] = col.header
		widths[i] = visibleWidth(col.header)
	}

	rows := make([][]string, 0, len(tasks))
	for _, task := range tasks {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = col.value(task)
			widths[i] = max(widths[i], visibleWidth(row[i]))
		}
		rows = append(rows, row)
	}

	var b strings.Builder
	writeTaskRow(&b, headers, widths)
	for _, row := range rows {
		writeTaskRow(&b, row, widths)
	}
	return b.String()
}

func writeTaskRow(b *strings.Builder, row []string, widths []int) {
	last := len(row) - 1
	for i, cell := range row {
		b.WriteString(cell)
		if i == last {
			break
		}
		b.WriteString(strings.Repeat(" ", widths[i]-visibleWidth(cell)+columnGap))
	}
	b.WriteByte('\n')
}

func taskStatus(t model.Task) string {
	if t.Completed {
		return "done"
	}
	return "pending"
}

// singleLine collapses whitespace runs, newlines included, and cuts text to
// max runes.
func singleLine(text string, max int) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	keep := max - utf8.RuneCountInString(taskTextEllipsis)
	return string([]rune(text)[:keep]) + taskTextEllipsis
}

// visibleWidth counts runes outside SGR escape sequences.
func visibleWidth(s string) int {
	width := 0
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			inEscape = r != 'm'
		case r == '\x1b':
			inEscape = true
		default:
			width++
		}
	}
	return width
}
