package summary

import (
	"net/url"
	"strings"

	apperrors "github.com/ytscout/ytscout/internal/errors"
	"github.com/ytscout/ytscout/internal/model"
)

// Field delimiter between selected summary fields
const Delimiter = "---"

// Summary field keys. Selections are always emitted in canonical order no
// matter how the caller ordered them.
const (
	FieldChannelName = "channelName"
	FieldChannelURL  = "channelUrl"
	FieldTitle       = "title"
	FieldVideoURL    = "videoUrl"
	FieldDuration    = "duration"
	FieldKeyword     = "keyword"
	FieldVideoID     = "videoId"
)

// Extra field keys for the "|"-prefixed appendix
const (
	ExtraChannelName = "channelName"
	ExtraVideoTitle  = "videoTitle"
)

// canonicalOrder fixes the emission order of selected fields. The default
// selection is every field except videoId.
var canonicalOrder = []string{
	FieldChannelName,
	FieldChannelURL,
	FieldTitle,
	FieldVideoURL,
	FieldDuration,
	FieldKeyword,
	FieldVideoID,
}

// Options carries the per-invocation formatting knobs
type Options struct {
	// Fields is an explicit selection of summary field keys. Nil or empty
	// means the default set (canonical order minus videoId). The selection is
	// re-sorted into canonical order; unknown keys are rejected.
	Fields []string
	// CustomSuffix, when non-empty, is appended after a trailing delimiter.
	CustomSuffix string
	// CustomDuration, when non-empty, replaces each record's duration during
	// Recompose. Empty restores the originally formatted duration.
	CustomDuration string
}

// Composer builds delimited summary strings. It owns the append-order ledger
// for the optional extra fields: enabling an extra moves it to the end of the
// ledger, disabling removes it, and only enabled extras are emitted.
type Composer struct {
	ledger  []string
	enabled map[string]bool
}

// NewComposer creates a composer with the default ledger and no extras enabled
func NewComposer() *Composer {
	return &Composer{
		ledger:  []string{ExtraChannelName, ExtraVideoTitle},
		enabled: make(map[string]bool),
	}
}

// EnableExtra turns an extra field on and moves it to the end of the ledger
func (c *Composer) EnableExtra(field string) error {
	if field != ExtraChannelName && field != ExtraVideoTitle {
		return apperrors.New(apperrors.CodeInvalidArg, "unknown extra field: "+field)
	}
	c.removeFromLedger(field)
	c.ledger = append(c.ledger, field)
	c.enabled[field] = true
	return nil
}

// DisableExtra turns an extra field off and drops it from the ledger
func (c *Composer) DisableExtra(field string) {
	c.removeFromLedger(field)
	delete(c.enabled, field)
}

// Extras returns the enabled extra fields in ledger order
func (c *Composer) Extras() []string {
	var out []string
	for _, field := range c.ledger {
		if c.enabled[field] {
			out = append(out, field)
		}
	}
	return out
}

func (c *Composer) removeFromLedger(field string) {
	for i, existing := range c.ledger {
		if existing == field {
			c.ledger = append(c.ledger[:i], c.ledger[i+1:]...)
			return
		}
	}
}

// Compose builds the summary string for one record. Selected fields are
// emitted in canonical order joined by the delimiter, empty values skipped;
// enabled extras follow, each prefixed "|"; a non-empty custom suffix is
// appended last behind one more delimiter. Composing twice with the same
// record, ledger and options yields an identical string.
func (c *Composer) Compose(record *model.ResultRecord, opts Options) (string, error) {
	selected, err := resolveSelection(opts.Fields)
	if err != nil {
		return "", err
	}

	var parts []string
	for _, field := range selected {
		value := fieldValue(record, field)
		if value == "" {
			continue
		}
		parts = append(parts, value)
	}
	summary := strings.Join(parts, Delimiter)

	for _, field := range c.ledger {
		if !c.enabled[field] {
			continue
		}
		value := extraValue(record, field)
		if value == "" {
			continue
		}
		summary += "|" + value
	}

	if opts.CustomSuffix != "" {
		summary += Delimiter + opts.CustomSuffix
	}
	return summary, nil
}

// Recompose rewrites duration and summary in place for every record. A
// non-empty custom duration overrides each record's duration; an empty one
// restores the originally formatted value.
func (c *Composer) Recompose(records []*model.ResultRecord, opts Options) error {
	for _, record := range records {
		if opts.CustomDuration != "" {
			record.Duration = opts.CustomDuration
		} else {
			record.Duration = record.OriginalDuration
		}
		summary, err := c.Compose(record, opts)
		if err != nil {
			return err
		}
		record.Summary = summary
	}
	return nil
}

// resolveSelection maps the requested field keys onto canonical order. The
// request's own ordering is deliberately discarded.
func resolveSelection(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return canonicalOrder[:len(canonicalOrder)-1], nil
	}

	want := make(map[string]bool, len(requested))
	for _, field := range requested {
		if !isCanonicalField(field) {
			return nil, apperrors.New(apperrors.CodeInvalidArg, "unknown summary field: "+field)
		}
		want[field] = true
	}

	var selected []string
	for _, field := range canonicalOrder {
		if want[field] {
			selected = append(selected, field)
		}
	}
	return selected, nil
}

func isCanonicalField(field string) bool {
	for _, known := range canonicalOrder {
		if known == field {
			return true
		}
	}
	return false
}

func fieldValue(record *model.ResultRecord, field string) string {
	switch field {
	case FieldChannelName:
		return record.ChannelName
	case FieldChannelURL:
		return record.ChannelURL
	case FieldTitle:
		return record.Title
	case FieldVideoURL:
		return WatchURL(record)
	case FieldDuration:
		return record.Duration
	case FieldKeyword:
		return record.Keyword
	case FieldVideoID:
		return record.VideoID
	}
	return ""
}

func extraValue(record *model.ResultRecord, field string) string {
	switch field {
	case ExtraChannelName:
		return record.ChannelName
	case ExtraVideoTitle:
		return record.Title
	}
	return ""
}

// WatchURL builds the watch link with the channel reference embedded as the
// ab_channel tracking parameter: the handle when the channel URL resolved to
// one, else the raw channel ID.
func WatchURL(record *model.ResultRecord) string {
	ref := record.ChannelID
	if i := strings.LastIndex(record.ChannelURL, "/@"); i >= 0 {
		ref = record.ChannelURL[i+2:]
	}
	u := "https://www.youtube.com/watch?v=" + url.QueryEscape(record.VideoID)
	if ref != "" {
		u += "&ab_channel=" + url.QueryEscape(ref)
	}
	return u
}
