// Package display renders fetch results for the terminal.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/Adda-Baaj/newstimes/internal/domain"
	"github.com/Adda-Baaj/newstimes/pkg/providers"
)

// Empty-state messages, one per non-success status.
const (
	MsgNoConnection = "No internet connection."
	MsgNoNews       = "No news found."
	MsgUnreachable  = "Couldn't reach the news server. Try again later."
	MsgBadResponse  = "The news service returned an unexpected response."
)

// Options controls rendering.
type Options struct {
	Colors bool
	// Descriptions, when set, adds a description line per article (index aligned).
	Descriptions []string
}

// EmptyStateMessage returns the message shown instead of the list.
func EmptyStateMessage(status domain.FetchStatus) string {
	switch status {
	case domain.StatusOffline:
		return MsgNoConnection
	case domain.StatusTransientFailure:
		return MsgUnreachable
	case domain.StatusPermanentFailure:
		return MsgBadResponse
	default:
		return MsgNoNews
	}
}

// Render writes the article table, or the empty-state message when there is nothing to list.
func Render(w io.Writer, res domain.FetchResult, opts Options) error {
	if res.Status != domain.StatusSuccess || len(res.Articles) == 0 {
		return renderEmptyState(w, res.Status, opts.Colors)
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)

	rows := make([][]string, 0, len(res.Articles)*2)
	for i, a := range res.Articles {
		rows = append(rows, []string{strconv.Itoa(i + 1), sectionLabel(a.Section, opts.Colors), a.Title, a.Date()})
		if i < len(opts.Descriptions) && opts.Descriptions[i] != "" {
			rows = append(rows, []string{"", "", faint(opts.Descriptions[i], opts.Colors), ""})
		}
	}

	table.Header([]string{"#", "Section", "Title", "Date"})
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}

// RenderJSON writes the result as a JSON document.
func RenderJSON(w io.Writer, res domain.FetchResult) error {
	doc := struct {
		Status   string           `json:"status"`
		Message  string           `json:"message,omitempty"`
		Error    string           `json:"error,omitempty"`
		Articles []domain.Article `json:"articles"`
	}{
		Status:   res.Status.String(),
		Articles: res.Articles,
	}
	if doc.Articles == nil {
		doc.Articles = []domain.Article{}
	}
	if res.Status != domain.StatusSuccess {
		doc.Message = EmptyStateMessage(res.Status)
	}
	if res.Err != nil {
		doc.Error = providers.RedactAPIKey(res.Err.Error())
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func renderEmptyState(w io.Writer, status domain.FetchStatus, colors bool) error {
	msg := EmptyStateMessage(status)
	if !colors {
		_, err := fmt.Fprintln(w, msg)
		return err
	}

	c := color.New(color.FgYellow)
	if status != domain.StatusEmpty {
		c = color.New(color.FgRed)
	}
	c.EnableColor()
	_, err := c.Fprintln(w, msg)
	return err
}

func sectionLabel(section string, colors bool) string {
	if !colors {
		return section
	}
	c := color.New(color.FgCyan, color.Bold)
	c.EnableColor()
	return c.Sprint(section)
}

func faint(text string, colors bool) string {
	if !colors {
		return text
	}
	c := color.New(color.Faint)
	c.EnableColor()
	return c.Sprint(text)
}
