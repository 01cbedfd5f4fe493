package spreadsheet

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"route-optimizer-service/internal/domain"
	"strconv"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"
)

// Expected column layout, header in row 1:
// A company, B address, C weight, D delivery date, E manager.
const (
	colCompany = iota
	colAddress
	colWeight
	colDate
	colManager
)

// Delivery dates arrive as "дд.мм" or a "дд.мм - дд.мм" range.
var datePattern = regexp.MustCompile(`^\d{1,2}\.\d{1,2}(?:\s*-\s*\d{1,2}\.\d{1,2})?$`)

// XLSXSource reads delivery destinations from a spreadsheet file.
//
// Rows without a usable address are filtered here, so downstream
// consumers never see partially-shaped records. Optional fields get
// permissive defaults instead of failing the row.
type XLSXSource struct {
	Path  string
	Sheet string
}

func NewXLSXSource(path, sheet string) *XLSXSource {
	return &XLSXSource{Path: path, Sheet: sheet}
}

func (s *XLSXSource) ListAddresses(_ context.Context) ([]domain.AddressRecord, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("list addresses: open %q: %w", s.Path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(s.Sheet)
	if err != nil {
		return nil, fmt.Errorf("list addresses: read sheet %q: %w", s.Sheet, err)
	}

	records := make([]domain.AddressRecord, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue // header
		}

		address := strings.TrimSpace(cell(row, colAddress))
		if !validAddress(address) {
			continue
		}

		company := strings.TrimSpace(cell(row, colCompany))
		if company == "" {
			company = domain.DefaultCompanyName
		}

		date := strings.TrimSpace(cell(row, colDate))
		if date != "" && !datePattern.MatchString(date) {
			log.Printf("row=%d invalid delivery date %q, dropping field", i+1, date)
			date = ""
		}

		records = append(records, domain.AddressRecord{
			Company:      company,
			Address:      address,
			Weight:       parseWeight(cell(row, colWeight)),
			DeliveryDate: date,
			Manager:      strings.TrimSpace(cell(row, colManager)),
		})
	}

	return records, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

// validAddress requires enough text to geocode: more than five
// characters and at least one digit (a house number).
func validAddress(address string) bool {
	if len([]rune(address)) <= 5 {
		return false
	}
	for _, r := range address {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// parseWeight handles the formats seen in real sheets: embedded spaces
// as thousands separators and a comma decimal separator. Unparseable
// values fall back to zero rather than failing the row.
func parseWeight(raw string) float64 {
	cleaned := strings.Join(strings.Fields(raw), "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" {
		return 0
	}

	w, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || w < 0 {
		return 0
	}
	return w
}
