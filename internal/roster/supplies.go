package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/medboard/medboard/internal/models"
)

// SupplyRow is one parsed supply roster entry. Quantity is zero for the
// minimal roster variant, which registers metadata without stock.
type SupplyRow struct {
	Supply   models.Supply
	Quantity int
}

// SupplyResult reports what a supply roster load produced.
type SupplyResult struct {
	Rows    []SupplyRow
	Dropped int
}

// LoadSupplies reads the supply roster. Two variants are accepted:
// minimal (id,name,location) and extended
// (id,name,category,quantity,unit,expiry,location). The header row is
// skipped; malformed rows are dropped.
func LoadSupplies(path string) (*SupplyResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening supply roster: %w", err)
	}
	defer f.Close()

	res, err := ReadSupplies(f)
	if err != nil {
		return nil, fmt.Errorf("reading supply roster %s: %w", path, err)
	}
	if res.Dropped > 0 {
		slog.Warn("dropped malformed supply rows", "path", path, "count", res.Dropped)
	}
	return res, nil
}

// ReadSupplies parses supply rows from a reader.
func ReadSupplies(r io.Reader) (*SupplyResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}

	res := &SupplyResult{}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		sr, ok := parseSupplyRow(row)
		if !ok {
			res.Dropped++
			continue
		}
		res.Rows = append(res.Rows, sr)
	}
	return res, nil
}

func parseSupplyRow(row []string) (SupplyRow, bool) {
	switch len(row) {
	case 3:
		id, err := strconv.Atoi(row[0])
		if err != nil || id <= 0 || row[1] == "" {
			return SupplyRow{}, false
		}
		return SupplyRow{
			Supply: models.Supply{ID: id, Name: row[1], Location: row[2]},
		}, true
	case 7:
		id, err := strconv.Atoi(row[0])
		if err != nil || id <= 0 || row[1] == "" {
			return SupplyRow{}, false
		}
		qty, err := strconv.Atoi(row[3])
		if err != nil || qty < 0 {
			return SupplyRow{}, false
		}
		return SupplyRow{
			Supply: models.Supply{
				ID:       id,
				Name:     row[1],
				Category: row[2],
				Unit:     row[4],
				Expiry:   row[5],
				Location: row[6],
			},
			Quantity: qty,
		}, true
	default:
		return SupplyRow{}, false
	}
}
