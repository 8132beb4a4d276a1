package cardvault

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/cardvault/cardvault/date"
	"github.com/shopspring/decimal"
)

// ColumnType is the declared type of a flat-file column.
type ColumnType string

const (
	TypeString ColumnType = "string"
	TypeInt    ColumnType = "int"
	TypeFloat  ColumnType = "float"
	TypeDate   ColumnType = "date"
)

// Column pairs a flat-file column name with its declared type.
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Canonical column types per table kind. A configured type map must agree
// with these; a registry cannot redeclare "in date" as a float.
var cardColumnTypes = map[string]ColumnType{
	"pid":             TypeString,
	"id":              TypeString,
	"name":            TypeString,
	"set_name":        TypeString,
	"finish":          TypeString,
	"language":        TypeString,
	"condition":       TypeString,
	"comment":         TypeString,
	"in date":         TypeDate,
	"out date":        TypeDate,
	"price trend usd": TypeFloat,
	"price trend eur": TypeFloat,
}

var eventColumnTypes = map[string]ColumnType{
	"id":      TypeString,
	"in":      TypeString,
	"out":     TypeString,
	"date":    TypeDate,
	"comment": TypeString,
}

var timelineColumnTypes = map[string]ColumnType{
	"date":               TypeDate,
	"card count":         TypeInt,
	"price usd":          TypeFloat,
	"price eur":          TypeFloat,
	"price change % usd": TypeFloat,
	"price change % eur": TypeFloat,
	"comment":            TypeString,
}

// DefaultVaultColumns returns the full vault/archive column set in file order.
func DefaultVaultColumns() []Column {
	return columnsOf(cardColumnTypes, []string{
		"pid", "id", "name", "set_name", "finish", "language", "condition",
		"comment", "in date", "out date", "price trend usd", "price trend eur",
	})
}

// DefaultActivityColumns returns the full activity column set in file order.
func DefaultActivityColumns() []Column {
	return columnsOf(eventColumnTypes, []string{"id", "in", "out", "date", "comment"})
}

// DefaultTimelineColumns returns the full timeline column set in file order.
func DefaultTimelineColumns() []Column {
	return columnsOf(timelineColumnTypes, []string{
		"date", "card count", "price usd", "price eur",
		"price change % usd", "price change % eur", "comment",
	})
}

func columnsOf(types map[string]ColumnType, names []string) []Column {
	cols := make([]Column, len(names))
	for i, name := range names {
		cols[i] = Column{Name: name, Type: types[name]}
	}
	return cols
}

// SchemaError reports a mismatch between a flat file (or its configured type
// map) and the canonical table schema.
type SchemaError struct {
	Column string
	Row    int // 1-based data row; 0 when the error is in the header or config
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("column %q, row %d: %s", e.Column, e.Row, e.Reason)
	}
	return fmt.Sprintf("column %q: %s", e.Column, e.Reason)
}

// Schema is a validated, ordered column set for one table kind.
type Schema struct {
	columns []Column
	types   map[string]ColumnType
}

// NewSchema validates a configured column list against the canonical type
// map for the table kind. Unknown column names and type redeclarations
// surface as *SchemaError.
func NewSchema(columns []Column, canonical map[string]ColumnType) (*Schema, error) {
	s := &Schema{types: make(map[string]ColumnType, len(columns))}
	for _, col := range columns {
		want, known := canonical[col.Name]
		if !known {
			return nil, &SchemaError{Column: col.Name, Reason: "not a known column"}
		}
		if col.Type != want {
			return nil, &SchemaError{Column: col.Name, Reason: fmt.Sprintf("declared %q, want %q", col.Type, want)}
		}
		if _, dup := s.types[col.Name]; dup {
			return nil, &SchemaError{Column: col.Name, Reason: "declared twice"}
		}
		s.columns = append(s.columns, col)
		s.types[col.Name] = col.Type
	}
	return s, nil
}

// Columns returns the schema's columns in file order.
func (s *Schema) Columns() []Column { return s.columns }

// Has reports whether the schema carries the named column.
func (s *Schema) Has(name string) bool {
	_, ok := s.types[name]
	return ok
}

// strip zeroes every card field whose column is absent from the schema, so
// transfers between tables with different column sets do not leak data.
func (s *Schema) strip(c Card) Card {
	if !s.Has("id") {
		c.ID = ""
	}
	if !s.Has("set_name") {
		c.SetName = ""
	}
	if !s.Has("finish") {
		c.Finish = NonFoil
	}
	if !s.Has("language") {
		c.Language = ""
	}
	if !s.Has("condition") {
		c.Condition = ""
	}
	if !s.Has("comment") {
		c.Comment = ""
	}
	if !s.Has("in date") {
		c.InDate = date.Date{}
	}
	if !s.Has("out date") {
		c.OutDate = date.Date{}
	}
	if !s.Has("price trend usd") {
		c.PriceUSD = decimal.Decimal{}
	}
	if !s.Has("price trend eur") {
		c.PriceEUR = decimal.Decimal{}
	}
	return c
}

// cell codecs

func (c CSVConfig) parseFloat(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Decimal{}, nil
	}
	if c.Decimal == "," {
		raw = strings.ReplaceAll(raw, ",", ".")
	}
	return decimal.NewFromString(raw)
}

func (c CSVConfig) formatFloat(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	s := d.String()
	if c.Decimal == "," {
		s = strings.ReplaceAll(s, ".", ",")
	}
	return s
}

// parseDate coerces a raw date cell. Unparsable values become the zero
// (unknown) date rather than an error, matching the date-column semantics of
// the flat files.
func (c CSVConfig) parseDate(raw string) date.Date {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return date.Date{}
	}
	d, err := date.ParseLayout(c.dateFormat(), raw)
	if err != nil {
		// fall back to the canonical write format before giving up
		if d, err2 := date.Parse(raw); err2 == nil {
			return d
		}
		return date.Date{}
	}
	return d
}

func (c CSVConfig) formatDate(d date.Date) string { return d.Format(c.dateFormat()) }

// readTable reads the header and rows of a CSV stream, drops file columns
// absent from the schema (logging the bloat cleanup), and hands each row to
// set as (column, value, 1-based row) triples.
func readTable(r io.Reader, s *Schema, cfg CSVConfig, set func(col, raw string, row int) error) error {
	cr := csv.NewReader(r)
	cr.Comma = cfg.comma()
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	for _, name := range header {
		if name != "" && !s.Has(name) {
			log.Printf("warning: dropping column %q not present in the configured type map", name)
		}
	}

	row := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("cannot read row %d: %w", row+1, err)
		}
		row++
		for i, raw := range record {
			if i >= len(header) {
				break
			}
			name := header[i]
			if name == "" || !s.Has(name) {
				continue
			}
			if err := set(name, raw, row); err != nil {
				return err
			}
		}
		if err := set("", "", row); err != nil { // end-of-row marker
			return err
		}
	}
}

// DecodeCards reads a vault or archive table.
func DecodeCards(r io.Reader, s *Schema, cfg CSVConfig) (*Collection, error) {
	collection := NewCollection()
	var current Card
	err := readTable(r, s, cfg, func(col, raw string, row int) error {
		if col == "" {
			if s.Has("finish") {
				current.Finish = ParseFinish(string(current.Finish))
			}
			collection.Append(current)
			current = Card{}
			return nil
		}
		return setCardField(&current, col, raw, cfg, row)
	})
	if err != nil {
		return nil, err
	}
	return collection, nil
}

func setCardField(c *Card, col, raw string, cfg CSVConfig, row int) error {
	raw = strings.TrimSpace(raw)
	switch col {
	case "pid":
		c.PID = raw
	case "id":
		c.ID = raw
	case "name":
		c.Name = raw
	case "set_name":
		c.SetName = raw
	case "finish":
		c.Finish = Finish(raw)
	case "language":
		c.Language = raw
	case "condition":
		c.Condition = raw
	case "comment":
		c.Comment = raw
	case "in date":
		c.InDate = cfg.parseDate(raw)
	case "out date":
		c.OutDate = cfg.parseDate(raw)
	case "price trend usd":
		d, err := cfg.parseFloat(raw)
		if err != nil {
			return &SchemaError{Column: col, Row: row, Reason: fmt.Sprintf("invalid float %q", raw)}
		}
		c.PriceUSD = d
	case "price trend eur":
		d, err := cfg.parseFloat(raw)
		if err != nil {
			return &SchemaError{Column: col, Row: row, Reason: fmt.Sprintf("invalid float %q", raw)}
		}
		c.PriceEUR = d
	}
	return nil
}

// EncodeCards writes a vault or archive table using the schema's column order.
func EncodeCards(w io.Writer, collection *Collection, s *Schema, cfg CSVConfig) error {
	cw := csv.NewWriter(w)
	cw.Comma = cfg.comma()

	header := make([]string, len(s.columns))
	for i, col := range s.columns {
		header[i] = col.Name
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, card := range collection.Cards() {
		record := make([]string, len(s.columns))
		for i, col := range s.columns {
			record[i] = cardField(card, col.Name, cfg)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func cardField(c Card, col string, cfg CSVConfig) string {
	switch col {
	case "pid":
		return c.PID
	case "id":
		return c.ID
	case "name":
		return c.Name
	case "set_name":
		return c.SetName
	case "finish":
		return string(ParseFinish(string(c.Finish)))
	case "language":
		return c.Language
	case "condition":
		return c.Condition
	case "comment":
		return c.Comment
	case "in date":
		return cfg.formatDate(c.InDate)
	case "out date":
		return cfg.formatDate(c.OutDate)
	case "price trend usd":
		return cfg.formatFloat(c.PriceUSD)
	case "price trend eur":
		return cfg.formatFloat(c.PriceEUR)
	}
	return ""
}

// DecodeEvents reads an activity ledger.
func DecodeEvents(r io.Reader, s *Schema, cfg CSVConfig) (*Activity, error) {
	activity := NewActivity()
	var current Event
	err := readTable(r, s, cfg, func(col, raw string, row int) error {
		if col == "" {
			if current.In == "" {
				current.In = Placeholder
			}
			if current.Out == "" {
				current.Out = Placeholder
			}
			activity.Append(current)
			current = Event{}
			return nil
		}
		raw = strings.TrimSpace(raw)
		switch col {
		case "id":
			current.ID = raw
		case "in":
			current.In = raw
		case "out":
			current.Out = raw
		case "date":
			current.Date = cfg.parseDate(raw)
		case "comment":
			current.Comment = raw
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return activity, nil
}

// EncodeEvents writes an activity ledger using the schema's column order.
func EncodeEvents(w io.Writer, activity *Activity, s *Schema, cfg CSVConfig) error {
	cw := csv.NewWriter(w)
	cw.Comma = cfg.comma()

	header := make([]string, len(s.columns))
	for i, col := range s.columns {
		header[i] = col.Name
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, e := range activity.Events() {
		record := make([]string, len(s.columns))
		for i, col := range s.columns {
			switch col.Name {
			case "id":
				record[i] = e.ID
			case "in":
				record[i] = e.In
			case "out":
				record[i] = e.Out
			case "date":
				record[i] = cfg.formatDate(e.Date)
			case "comment":
				record[i] = e.Comment
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeTimeline reads a timeline table.
func DecodeTimeline(r io.Reader, s *Schema, cfg CSVConfig) (*Timeline, error) {
	timeline := NewTimeline()
	var current TimelineEntry
	err := readTable(r, s, cfg, func(col, raw string, row int) error {
		if col == "" {
			timeline.Append(current)
			current = TimelineEntry{}
			return nil
		}
		raw = strings.TrimSpace(raw)
		switch col {
		case "date":
			current.Date = cfg.parseDate(raw)
		case "card count":
			if raw == "" {
				return nil
			}
			n, err := strconv.Atoi(raw)
			if err != nil {
				return &SchemaError{Column: col, Row: row, Reason: fmt.Sprintf("invalid int %q", raw)}
			}
			current.CardCount = n
		case "price usd", "price eur", "price change % usd", "price change % eur":
			d, err := cfg.parseFloat(raw)
			if err != nil {
				return &SchemaError{Column: col, Row: row, Reason: fmt.Sprintf("invalid float %q", raw)}
			}
			switch col {
			case "price usd":
				current.PriceUSD = d
			case "price eur":
				current.PriceEUR = d
			case "price change % usd":
				current.ChangePctUSD = d
			case "price change % eur":
				current.ChangePctEUR = d
			}
		case "comment":
			current.Comment = raw
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return timeline, nil
}

// EncodeTimeline writes a timeline table using the schema's column order.
func EncodeTimeline(w io.Writer, timeline *Timeline, s *Schema, cfg CSVConfig) error {
	cw := csv.NewWriter(w)
	cw.Comma = cfg.comma()

	header := make([]string, len(s.columns))
	for i, col := range s.columns {
		header[i] = col.Name
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, e := range timeline.Entries() {
		record := make([]string, len(s.columns))
		for i, col := range s.columns {
			switch col.Name {
			case "date":
				record[i] = cfg.formatDate(e.Date)
			case "card count":
				record[i] = strconv.Itoa(e.CardCount)
			case "price usd":
				record[i] = cfg.formatFloat(e.PriceUSD)
			case "price eur":
				record[i] = cfg.formatFloat(e.PriceEUR)
			case "price change % usd":
				record[i] = cfg.formatFloat(e.ChangePctUSD)
			case "price change % eur":
				record[i] = cfg.formatFloat(e.ChangePctEUR)
			case "comment":
				record[i] = e.Comment
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
