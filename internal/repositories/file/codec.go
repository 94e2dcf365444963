package file

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chrisdamba/menuprofit/internal/models"
)

// flexString accepts a JSON string or number; item ids arrive both ways.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*f = flexString(n.String())
	return nil
}

type orderRecord struct {
	OrderID   flexString `json:"order_id"`
	ItemID    flexString `json:"item_id"`
	Quantity  int        `json:"quantity"`
	IsPromo   bool       `json:"is_promo"`
	Platform  string     `json:"platform"`
	Timestamp string     `json:"timestamp"`
}

func decodeMenuItemsJSON(r io.Reader) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode menu items: %w", err)
	}
	return items, nil
}

func decodeOrdersJSON(r io.Reader) ([]models.OrderLine, error) {
	var records []orderRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	lines := make([]models.OrderLine, 0, len(records))
	for _, rec := range records {
		lines = append(lines, models.OrderLine{
			OrderID:   string(rec.OrderID),
			ItemID:    string(rec.ItemID),
			Quantity:  rec.Quantity,
			IsPromo:   rec.IsPromo,
			Platform:  rec.Platform,
			Timestamp: rec.Timestamp,
		})
	}
	return lines, nil
}

// csvTable reads a headed CSV into rows addressable by column name.
type csvTable struct {
	columns map[string]int
	rows    [][]string
}

func readCSV(r io.Reader, required ...string) (*csvTable, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &csvTable{columns: map[string]int{}}, nil
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return &csvTable{columns: columns, rows: records[1:]}, nil
}

func (t *csvTable) value(row []string, column string) string {
	i, ok := t.columns[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func decodeMenuItemsCSV(r io.Reader) ([]models.MenuItem, error) {
	table, err := readCSV(r, "item_id", "item_name", "cost_price", "selling_price")
	if err != nil {
		return nil, fmt.Errorf("decode menu items: %w", err)
	}
	items := make([]models.MenuItem, 0, len(table.rows))
	for n, row := range table.rows {
		id, err := strconv.Atoi(table.value(row, "item_id"))
		if err != nil {
			return nil, fmt.Errorf("menu items row %d: item_id: %w", n+2, err)
		}
		cost, err := strconv.ParseFloat(table.value(row, "cost_price"), 64)
		if err != nil {
			return nil, fmt.Errorf("menu items row %d: cost_price: %w", n+2, err)
		}
		price, err := strconv.ParseFloat(table.value(row, "selling_price"), 64)
		if err != nil {
			return nil, fmt.Errorf("menu items row %d: selling_price: %w", n+2, err)
		}
		items = append(items, models.MenuItem{
			ItemID:       id,
			ItemName:     table.value(row, "item_name"),
			Category:     table.value(row, "category"),
			CostPrice:    cost,
			SellingPrice: price,
		})
	}
	return items, nil
}

// decodeOrdersCSV reads the raw export format where is_promo is 0 or 1.
func decodeOrdersCSV(r io.Reader) ([]models.OrderLine, error) {
	table, err := readCSV(r, "item_id", "quantity", "is_promo", "timestamp")
	if err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	lines := make([]models.OrderLine, 0, len(table.rows))
	for n, row := range table.rows {
		qty, err := strconv.Atoi(table.value(row, "quantity"))
		if err != nil {
			return nil, fmt.Errorf("orders row %d: quantity: %w", n+2, err)
		}
		promo, err := strconv.ParseBool(table.value(row, "is_promo"))
		if err != nil {
			return nil, fmt.Errorf("orders row %d: is_promo: %w", n+2, err)
		}
		lines = append(lines, models.OrderLine{
			OrderID:   table.value(row, "order_id"),
			ItemID:    table.value(row, "item_id"),
			Quantity:  qty,
			IsPromo:   promo,
			Platform:  table.value(row, "platform"),
			Timestamp: table.value(row, "timestamp"),
		})
	}
	return lines, nil
}
