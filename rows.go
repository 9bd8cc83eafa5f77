package simpledb

import (
	"strconv"

	"github.com/jmoiron/sqlx"
)

// Row, tek bir sonuç satırını kolon adından değere map olarak temsil eder.
// Sürücüden string kolonlar için []byte dönebilir; okuma sonrası bu değerler
// string'e normalize edilir ki çağıran taraf sürücüye göre dallanmak zorunda
// kalmasın.
type Row map[string]any

// RowSet, sıralı bir satır dizisidir. Boş sonuç kümesi nil değil, sıfır
// uzunluklu bir RowSet'tir.
type RowSet []Row

// scanRowSet, sqlx satır kümesini RowSet'e aktarır ve kaynağı kapatır.
func scanRowSet(rows *sqlx.Rows) (RowSet, error) {
	defer rows.Close()

	out := make(RowSet, 0)
	for rows.Next() {
		row := Row{}
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// toInt64, sürücülerin sayısal değerler için döndürebildiği tipleri tek bir
// int64'e indirger. COUNT(*) MySQL'de int64, text protokol üzerinde string
// olarak gelebilir.
func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case uint64:
		return int64(n)
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	case []byte:
		parsed, err := strconv.ParseInt(string(n), 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
