package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/epeers/networth/internal/models"
)

// ParseHoldingsCSV parses a holdings import CSV into create requests.
// Required columns: name, kind, symbol, currency
// Optional columns: category, quantity, cost_per_unit, manual_price, tax_rate,
// notes, acquired_at, and one column per bucket name for allocation splits
// (domestic_equity, foreign_equity, crypto, employment_equity, bonds, cash).
// Blank lines are skipped. Kind, category and currency are validated later by
// the holding service so that every bad row is reported together.
func ParseHoldingsCSV(r io.Reader) ([]models.CreateHoldingRequest, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIdx := make(map[string]int)
	for i, col := range header {
		colIdx[strings.ToLower(strings.TrimSpace(col))] = i
	}

	for _, col := range []string{"name", "kind", "symbol", "currency"} {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	field := func(record []string, col string) string {
		idx, ok := colIdx[col]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var reqs []models.CreateHoldingRequest
	rowNum := 1 // header is row 1, data starts at row 2
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: failed to read CSV record: %w", rowNum+1, err)
		}
		rowNum++

		if field(record, "name") == "" && field(record, "symbol") == "" {
			continue
		}

		req := models.CreateHoldingRequest{
			Name:     field(record, "name"),
			Kind:     field(record, "kind"),
			Category: field(record, "category"),
			Symbol:   field(record, "symbol"),
			Currency: field(record, "currency"),
		}
		if req.Quantity, err = parseNumber(field(record, "quantity")); err != nil {
			return nil, fmt.Errorf("row %d: invalid quantity: %w", rowNum, err)
		}
		if req.CostPerUnit, err = parseNumber(field(record, "cost_per_unit")); err != nil {
			return nil, fmt.Errorf("row %d: invalid cost_per_unit: %w", rowNum, err)
		}
		if req.ManualPrice, err = parseOptional(field(record, "manual_price")); err != nil {
			return nil, fmt.Errorf("row %d: invalid manual_price: %w", rowNum, err)
		}
		if req.TaxRate, err = parseOptional(field(record, "tax_rate")); err != nil {
			return nil, fmt.Errorf("row %d: invalid tax_rate: %w", rowNum, err)
		}
		if notes := field(record, "notes"); notes != "" {
			req.Notes = &notes
		}
		if acquired := field(record, "acquired_at"); acquired != "" {
			var d models.FlexibleDate
			if err := d.UnmarshalJSON([]byte(strconv.Quote(acquired))); err != nil {
				return nil, fmt.Errorf("row %d: invalid acquired_at %q", rowNum, acquired)
			}
			req.AcquiredAt = &d
		}

		var splits [models.BucketCount]float64
		var hasSplits bool
		for _, b := range models.AllBuckets {
			v, err := parseNumber(field(record, b.String()))
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid %s split: %w", rowNum, b, err)
			}
			splits[b] = v
			hasSplits = hasSplits || v != 0
		}
		if hasSplits {
			req.Allocation = &models.AllocationSplits{
				DomesticEquity: splits[models.BucketDomesticEquity],
				ForeignEquity:  splits[models.BucketForeignEquity],
				Crypto:         splits[models.BucketCrypto],
				Employment:     splits[models.BucketEmployment],
				Bonds:          splits[models.BucketBonds],
				Cash:           splits[models.BucketCash],
			}
		}

		reqs = append(reqs, req)
	}

	return reqs, nil
}

// parseNumber accepts blanks as zero and tolerates thousands separators.
func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseOptional(s string) (*float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := parseNumber(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
