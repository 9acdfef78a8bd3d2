// Command seedcatalog converts a price-book Excel workbook into a SQL seed
// file for the catalog_prices table.
// Expected columns: A=trade, B=code, C=material, D=size, E=description,
// F=unit cost, G=labor rate. Row 1 is a header.
// Usage: go run ./cmd/seedcatalog [price_book.xlsx]
// Output: db/seeds/catalog_prices.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"takeoffs/internal/domain"
)

const batchSize = 500

type catalogRow struct {
	trade       string
	code        string
	material    string
	size        string
	description string
	unitCost    float64
	laborRate   float64
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	xlsxPath := "price_book.xlsx"
	if len(os.Args) > 1 {
		xlsxPath = os.Args[1]
	}
	outPath := "db/seeds/catalog_prices.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, skipped, err := parseSheet(f)
	if err != nil {
		return fmt.Errorf("parse price book: %w", err)
	}
	log.Printf("price book: %d rows (%d skipped)", len(entries), skipped)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	header := fmt.Sprintf("-- Catalog price seed data generated from %s.\n-- %d rows in batches of %d.\nBEGIN;\n\n",
		xlsxPath, len(entries), batchSize)
	if _, err := out.WriteString(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := writeBatch(out, entries[i:end]); err != nil {
			return fmt.Errorf("write batch at offset %d: %w", i, err)
		}
	}

	if _, err := out.WriteString("\nCOMMIT;\n"); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}

	log.Printf("Generated %d rows (%d batches) in %s",
		len(entries), (len(entries)+batchSize-1)/batchSize, outPath)
	return nil
}

// parseSheet reads the first sheet. Rows with an unknown trade, no pricing
// key (neither code nor material+size), or a non-numeric unit cost are
// skipped.
func parseSheet(f *excelize.File) ([]catalogRow, int, error) {
	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, err
	}

	var entries []catalogRow
	skipped := 0
	for i := 1; i < len(rows); i++ {
		row := rows[i]

		trade := strings.ToLower(strings.TrimSpace(cellVal(row, 0)))
		if domain.ParseTrade(trade) == domain.TradeUnknown {
			skipped++
			continue
		}

		entry := catalogRow{
			trade:       trade,
			code:        strings.TrimSpace(cellVal(row, 1)),
			material:    strings.TrimSpace(cellVal(row, 2)),
			size:        strings.TrimSpace(cellVal(row, 3)),
			description: strings.TrimSpace(cellVal(row, 4)),
		}
		if entry.code == "" && (entry.material == "" || entry.size == "") {
			skipped++
			continue
		}

		entry.unitCost, err = parseFloat(cellVal(row, 5))
		if err != nil {
			skipped++
			continue
		}
		// labor rate is optional
		entry.laborRate, _ = parseFloat(cellVal(row, 6))

		entries = append(entries, entry)
	}
	return entries, skipped, nil
}

func writeBatch(out *os.File, batch []catalogRow) error {
	if len(batch) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("INSERT INTO catalog_prices (id, trade, code, material, size, description, unit_cost, labor_rate, updated_at) VALUES\n")

	for i := range batch {
		e := &batch[i]
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "  (gen_random_uuid(), '%s', '%s', '%s', '%s', '%s', %.2f, %.4f, now())",
			escapeSQL(e.trade), escapeSQL(e.code), escapeSQL(e.material),
			escapeSQL(e.size), escapeSQL(e.description), e.unitCost, e.laborRate)
	}

	b.WriteString("\nON CONFLICT (trade, code, material, size) DO UPDATE SET\n")
	b.WriteString("  description = EXCLUDED.description,\n")
	b.WriteString("  unit_cost = EXCLUDED.unit_cost,\n")
	b.WriteString("  labor_rate = EXCLUDED.labor_rate,\n")
	b.WriteString("  updated_at = EXCLUDED.updated_at;\n")

	_, err := out.WriteString(b.String())
	return err
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty numeric cell")
	}
	return strconv.ParseFloat(s, 64)
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
