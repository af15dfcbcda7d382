package service

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"
)

// ── roster import errors ──

var (
	ErrImportBadFile     = errors.New("Không thể xử lý file Excel.")
	ErrImportNoRows      = errors.New("File Excel không có dữ liệu hợp lệ. Cần ít nhất cột Họ tên và/hoặc Mã sinh viên.")
	ErrImportTooManyRows = fmt.Errorf("File Excel vượt quá %d dòng.", maxImportRows)
)

const maxImportRows = 2000

// Accepted header spellings after normalizeHeader, in priority order.
// "Họ tên", "Ho_ten", "HO TEN" all become "ho ten"; "Mã SV" becomes "ma sv".
var (
	nameHeaders = []string{"ho ten", "ten"}
	codeHeaders = []string{"ma sinh vien", "ma sv"}
)

type rosterRow struct {
	name string
	code string
}

// parseRosterSheet reads the first sheet; its first row names the columns.
// A row survives when its name or code is non-blank.
func parseRosterSheet(r io.Reader) ([]rosterRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportBadFile, err)
	}
	defer f.Close()

	sheetRows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportBadFile, err)
	}
	if len(sheetRows) < 2 {
		return nil, ErrImportNoRows
	}

	columns := headerIndex(sheetRows[0])

	var rows []rosterRow
	for _, cells := range sheetRows[1:] {
		row := rosterRow{
			name: resolveCell(cells, columns, nameHeaders),
			code: resolveCell(cells, columns, codeHeaders),
		}
		if row.name == "" && row.code == "" {
			continue
		}
		rows = append(rows, row)
		if len(rows) > maxImportRows {
			return nil, ErrImportTooManyRows
		}
	}
	if len(rows) == 0 {
		return nil, ErrImportNoRows
	}
	return rows, nil
}

// headerIndex maps each normalised header to its first column.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if key == "" {
			continue
		}
		if _, seen := idx[key]; !seen {
			idx[key] = i
		}
	}
	return idx
}

// resolveCell returns the first non-blank value among the candidate
// columns. Missing cells read as "".
func resolveCell(cells []string, columns map[string]int, candidates []string) string {
	for _, key := range candidates {
		i, ok := columns[key]
		if !ok || i >= len(cells) {
			continue
		}
		if v := strings.TrimSpace(cells[i]); v != "" {
			return v
		}
	}
	return ""
}

// normalizeHeader lower-cases h, strips diacritics (đ → d) and folds
// underscores and whitespace runs into single spaces.
func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(strings.ToLower(h)) {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case r == 'đ':
			r = 'd'
		case r == '_' || unicode.IsSpace(r):
			r = ' '
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
