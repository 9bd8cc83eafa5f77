// Package dialect, farklı veritabanları için SQL cümle üretimini (clause building)
// sağlar. Koşul map'lerini WHERE/SET parçalarına, veri map'lerini INSERT/UPDATE
// cümlelerine çevirir; her motor için doğru identifier tırnaklamasını ve parametre
// placeholder biçimini üretir (MySQL: `?`, PostgreSQL: `$1`, SQLite: `?`).
//
// Yazar: Ahmet ALTUN
// Github: github.com/biyonik
// LinkedIn: linkedin.com/in/biyonik
// Email: ahmet.altun60@gmail.com
package dialect

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/biyonik/go-simple-db/internal/validation"
)

// ----------------------------------------------------------------------------
// Sentinel Errors
// ----------------------------------------------------------------------------

// ErrInvalidArgument, çağrı şekli bozuk olan her durumun kök hatasıdır.
// Aşağıdaki özel hataların tamamı errors.Is ile bu köke eşlenir.
var ErrInvalidArgument = errors.New("simpledb: invalid argument")

var (
	// ErrNoTable, tablo adı verilmeden cümle derlenmeye çalışıldığında döner.
	ErrNoTable = fmt.Errorf("%w: no table specified", ErrInvalidArgument)

	// ErrNoColumns, INSERT/UPDATE için boş veri map'i verildiğinde döner.
	ErrNoColumns = fmt.Errorf("%w: no columns specified", ErrInvalidArgument)

	// ErrEmptyBatch, çok satırlı INSERT'e boş satır listesi verildiğinde döner.
	ErrEmptyBatch = fmt.Errorf("%w: empty row batch", ErrInvalidArgument)

	// ErrInconsistentBatch, batch satırlarının kolon kümeleri birbirinden
	// farklı olduğunda döner.
	ErrInconsistentBatch = fmt.Errorf("%w: batch rows must share the same column set", ErrInvalidArgument)
)

// ----------------------------------------------------------------------------
// Grammar Interface
// ----------------------------------------------------------------------------

// Grammar, yapısal girdileri (tablo adı, kolon→değer map'leri) veritabanına özgü
// SQL metnine ve sıralı parametre listesine çevirir.
//
// Güvenlik sözleşmesi: değerler asla SQL metnine yazılmaz, her zaman placeholder
// ile bağlanır. Identifier'lar ise placeholder ile bağlanamaz; bu yüzden SQL
// metnine yazılmadan önce validation paketinden geçirilir. Geçersiz bir
// identifier ErrInvalidArgument'a eşlenen bir hata üretir.
type Grammar interface {
	// Name, gramerin kimliğini döndürür (örn. "mysql", "postgres", "sqlite").
	Name() string

	// Wrap, bir kolon adını veritabanına özgü tırnaklarla sarar.
	// "table.column" formatını destekler; "*" olduğu gibi geçer.
	Wrap(identifier string) (string, error)

	// WrapTable, tablo adını sarar ve "table as alias" formatını yönetir.
	WrapTable(table string) (string, error)

	// Placeholder, sıfırdan başlayan indeks için parametre yer tutucusunu döndürür.
	Placeholder(index int) string

	// CompileWhere, eşitlik koşullarını AND ile bağlanmış bir WHERE parçasına
	// derler. Boş map için boş string döner; WHERE anahtar kelimesi üretilmez.
	CompileWhere(conditions map[string]any) (string, []any, error)

	// CompileSelect, SELECT sorgusunu derler. columns boşsa "*" kullanılır,
	// limit/offset nil ise ilgili parça üretilmez.
	CompileSelect(table string, columns []string, conditions map[string]any, limit, offset *int) (string, []any, error)

	// CompileInsert, tek satırlık INSERT sorgusunu derler.
	CompileInsert(table string, data map[string]any) (string, []any, error)

	// CompileInsertBatch, çok satırlı INSERT sorgusunu derler. Tüm satırlar
	// aynı kolon kümesine sahip olmalıdır; parametreler satır sırasına göre
	// düzleştirilir.
	CompileInsertBatch(table string, rows []map[string]any) (string, []any, error)

	// CompileUpdate, UPDATE sorgusunu derler. conditions boşsa WHERE üretilmez
	// ve tüm satırlar güncellenir — bilinçli kullanılmalıdır.
	CompileUpdate(table string, data, conditions map[string]any) (string, []any, error)

	// CompileDelete, DELETE sorgusunu derler. conditions boşsa tüm tablo
	// silinir. Çok tehlikeli! — bilinçli kullanılmalıdır.
	CompileDelete(table string, conditions map[string]any) (string, []any, error)

	// CompileCount, SELECT COUNT(*) sorgusunu derler. Sonuç kolonu her motor
	// için "aggregate" olarak adlandırılır.
	CompileCount(table string, conditions map[string]any) (string, []any, error)

	// TableExistsQuery, tablonun şema kataloğunda kayıtlı olup olmadığını
	// yoklayan sorguyu üretir. Tablo adı identifier olarak değil, bağlı
	// parametre olarak geçer.
	TableExistsQuery(table string) (string, []any)

	// ColumnExistsQuery, kolonun şema kataloğunda kayıtlı olup olmadığını
	// yoklayan sorguyu üretir.
	ColumnExistsQuery(table, column string) (string, []any)
}

// ForDriver, database/sql sürücü adından uygun Grammar implementasyonunu seçer.
// Bilinmeyen sürücüler için MySQL varsayılır.
func ForDriver(driverName string) Grammar {
	switch driverName {
	case "postgres", "pgx", "cloudsqlpostgres":
		return Postgres()
	case "sqlite3", "sqlite":
		return SQLite()
	default:
		return MySQL()
	}
}

// ----------------------------------------------------------------------------
// Base Grammar (ortak derleme mantığı)
// ----------------------------------------------------------------------------

// BaseGrammar, tüm gramer implementasyonlarının ortak derleme mantığını taşır.
// Motorlar arasındaki fark tırnak karakteri ve placeholder biçimiyle sınırlıdır;
// katalog yoklama sorguları ise her somut gramer tarafından ayrıca sağlanır.
type BaseGrammar struct {
	name     string
	quote    string // identifier tırnak karakteri: "`" veya `"`
	numbered bool   // true ise placeholder'lar $1, $2 ... şeklinde numaralanır
}

// Name, gramerin adını döndürür.
func (g *BaseGrammar) Name() string {
	return g.name
}

// Placeholder, verilen sıfır tabanlı indeks için yer tutucu üretir.
func (g *BaseGrammar) Placeholder(index int) string {
	if g.numbered {
		return "$" + strconv.Itoa(index+1)
	}
	return "?"
}

func (g *BaseGrammar) quoted(part string) string {
	return g.quote + part + g.quote
}

// Wrap, kolon adını doğrulayıp tırnaklar. "table.column" her iki parçası ayrı
// ayrı sarılır, "*" dokunulmadan geçer.
func (g *BaseGrammar) Wrap(identifier string) (string, error) {
	if identifier == "*" {
		return "*", nil
	}

	if err := validation.ValidateIdentifier(identifier); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	if strings.Contains(identifier, ".") {
		parts := strings.Split(identifier, ".")
		wrapped := make([]string, len(parts))
		for i, part := range parts {
			wrapped[i] = g.quoted(part)
		}
		return strings.Join(wrapped, "."), nil
	}

	return g.quoted(identifier), nil
}

// WrapTable, tablo adını doğrulayıp tırnaklar, alias varsa AS ile bağlar.
func (g *BaseGrammar) WrapTable(table string) (string, error) {
	name, alias, err := validation.ValidateTableWithAlias(table)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	wrapped := g.quoted(name)
	if alias != "" {
		wrapped += " AS " + g.quoted(alias)
	}

	return wrapped, nil
}

// sortedKeys, map anahtarlarını alfabetik sıraya dizer. Go map'leri sırasızdır;
// deterministik SQL metni üretmek için anahtarlar her derlemede aynı sırayla
// gezilir. Placeholder sırası ile parametre sırası böylece her zaman eşleşir.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CompileWhere, eşitlik koşullarını derler. Boş map boş parça üretir; çağıran
// taraf WHERE'in her zaman var olacağını varsaymamalıdır.
func (g *BaseGrammar) CompileWhere(conditions map[string]any) (string, []any, error) {
	return g.compileWhere(conditions, 0)
}

// compileWhere, argOffset ile başlayarak placeholder numaralandırır. UPDATE gibi
// SET parametrelerinin önde bağlandığı cümlelerde numaralı placeholder'ların
// kaldığı yerden devam etmesi gerekir.
func (g *BaseGrammar) compileWhere(conditions map[string]any, argOffset int) (string, []any, error) {
	if len(conditions) == 0 {
		return "", nil, nil
	}

	keys := sortedKeys(conditions)
	parts := make([]string, len(keys))
	args := make([]any, 0, len(keys))

	for i, key := range keys {
		column, err := g.Wrap(key)
		if err != nil {
			return "", nil, err
		}
		parts[i] = column + " = " + g.Placeholder(argOffset+i)
		args = append(args, conditions[key])
	}

	return "WHERE " + strings.Join(parts, " AND "), args, nil
}

// CompileSelect, SELECT sorgusunu derler.
func (g *BaseGrammar) CompileSelect(table string, columns []string, conditions map[string]any, limit, offset *int) (string, []any, error) {
	if table == "" {
		return "", nil, ErrNoTable
	}

	var sql strings.Builder
	sql.WriteString("SELECT ")

	if len(columns) == 0 {
		sql.WriteString("*")
	} else {
		wrappedCols := make([]string, len(columns))
		for i, col := range columns {
			// Boşluk veya parantez içeren ifadeler ham kabul edilir, sarılmaz.
			if strings.ContainsAny(col, " ()") {
				wrappedCols[i] = col
			} else {
				wrapped, err := g.Wrap(col)
				if err != nil {
					return "", nil, err
				}
				wrappedCols[i] = wrapped
			}
		}
		sql.WriteString(strings.Join(wrappedCols, ", "))
	}

	wrappedTable, err := g.WrapTable(table)
	if err != nil {
		return "", nil, err
	}
	sql.WriteString(" FROM ")
	sql.WriteString(wrappedTable)

	whereSQL, args, err := g.CompileWhere(conditions)
	if err != nil {
		return "", nil, err
	}
	if whereSQL != "" {
		sql.WriteString(" ")
		sql.WriteString(whereSQL)
	}

	if limit != nil {
		sql.WriteString(fmt.Sprintf(" LIMIT %d", *limit))
	}
	if offset != nil {
		sql.WriteString(fmt.Sprintf(" OFFSET %d", *offset))
	}

	return sql.String(), args, nil
}

// CompileInsert, tek satırlık INSERT sorgusunu derler.
func (g *BaseGrammar) CompileInsert(table string, data map[string]any) (string, []any, error) {
	if table == "" {
		return "", nil, ErrNoTable
	}
	if len(data) == 0 {
		return "", nil, ErrNoColumns
	}

	keys := sortedKeys(data)

	wrappedTable, err := g.WrapTable(table)
	if err != nil {
		return "", nil, err
	}

	var sql strings.Builder
	args := make([]any, 0, len(keys))

	sql.WriteString("INSERT INTO ")
	sql.WriteString(wrappedTable)
	sql.WriteString(" (")

	wrappedCols := make([]string, len(keys))
	placeholders := make([]string, len(keys))
	for i, key := range keys {
		wrapped, err := g.Wrap(key)
		if err != nil {
			return "", nil, err
		}
		wrappedCols[i] = wrapped
		placeholders[i] = g.Placeholder(i)
		args = append(args, data[key])
	}

	sql.WriteString(strings.Join(wrappedCols, ", "))
	sql.WriteString(") VALUES (")
	sql.WriteString(strings.Join(placeholders, ", "))
	sql.WriteString(")")

	return sql.String(), args, nil
}

// CompileInsertBatch, çok satırlı INSERT sorgusunu derler. Kolon kümesi ilk
// satırdan alınır; diğer satırlar aynı kümeyi taşımazsa ErrInconsistentBatch
// döner. Parametreler satır sırasına göre (row-major) düzleştirilir.
func (g *BaseGrammar) CompileInsertBatch(table string, rows []map[string]any) (string, []any, error) {
	if table == "" {
		return "", nil, ErrNoTable
	}
	if len(rows) == 0 {
		return "", nil, ErrEmptyBatch
	}
	if len(rows[0]) == 0 {
		return "", nil, ErrNoColumns
	}

	keys := sortedKeys(rows[0])

	wrappedTable, err := g.WrapTable(table)
	if err != nil {
		return "", nil, err
	}

	var sql strings.Builder
	args := make([]any, 0, len(rows)*len(keys))

	sql.WriteString("INSERT INTO ")
	sql.WriteString(wrappedTable)
	sql.WriteString(" (")

	wrappedCols := make([]string, len(keys))
	for i, key := range keys {
		wrapped, err := g.Wrap(key)
		if err != nil {
			return "", nil, err
		}
		wrappedCols[i] = wrapped
	}
	sql.WriteString(strings.Join(wrappedCols, ", "))
	sql.WriteString(") VALUES ")

	rowGroups := make([]string, len(rows))
	for i, row := range rows {
		if len(row) != len(keys) {
			return "", nil, ErrInconsistentBatch
		}

		placeholders := make([]string, len(keys))
		for j, key := range keys {
			val, ok := row[key]
			if !ok {
				return "", nil, ErrInconsistentBatch
			}
			placeholders[j] = g.Placeholder(len(args))
			args = append(args, val)
		}
		rowGroups[i] = "(" + strings.Join(placeholders, ", ") + ")"
	}
	sql.WriteString(strings.Join(rowGroups, ", "))

	return sql.String(), args, nil
}

// CompileUpdate, UPDATE sorgusunu derler. WHERE parametreleri SET
// parametrelerinden sonra bağlanır.
func (g *BaseGrammar) CompileUpdate(table string, data, conditions map[string]any) (string, []any, error) {
	if table == "" {
		return "", nil, ErrNoTable
	}
	if len(data) == 0 {
		return "", nil, ErrNoColumns
	}

	keys := sortedKeys(data)

	wrappedTable, err := g.WrapTable(table)
	if err != nil {
		return "", nil, err
	}

	var sql strings.Builder
	args := make([]any, 0, len(keys)+len(conditions))

	sql.WriteString("UPDATE ")
	sql.WriteString(wrappedTable)
	sql.WriteString(" SET ")

	setParts := make([]string, len(keys))
	for i, key := range keys {
		wrapped, err := g.Wrap(key)
		if err != nil {
			return "", nil, err
		}
		setParts[i] = wrapped + " = " + g.Placeholder(i)
		args = append(args, data[key])
	}
	sql.WriteString(strings.Join(setParts, ", "))

	whereSQL, whereArgs, err := g.compileWhere(conditions, len(keys))
	if err != nil {
		return "", nil, err
	}
	if whereSQL != "" {
		sql.WriteString(" ")
		sql.WriteString(whereSQL)
	}
	args = append(args, whereArgs...)

	return sql.String(), args, nil
}

// CompileDelete, DELETE sorgusunu derler.
func (g *BaseGrammar) CompileDelete(table string, conditions map[string]any) (string, []any, error) {
	if table == "" {
		return "", nil, ErrNoTable
	}

	wrappedTable, err := g.WrapTable(table)
	if err != nil {
		return "", nil, err
	}

	var sql strings.Builder
	sql.WriteString("DELETE FROM ")
	sql.WriteString(wrappedTable)

	whereSQL, args, err := g.CompileWhere(conditions)
	if err != nil {
		return "", nil, err
	}
	if whereSQL != "" {
		sql.WriteString(" ")
		sql.WriteString(whereSQL)
	}

	return sql.String(), args, nil
}

// CompileCount, SELECT COUNT(*) sorgusunu derler. Sonuç kolonu "aggregate"
// olarak adlandırılır; çağıran taraf değeri bu isimle okur.
func (g *BaseGrammar) CompileCount(table string, conditions map[string]any) (string, []any, error) {
	if table == "" {
		return "", nil, ErrNoTable
	}

	wrappedTable, err := g.WrapTable(table)
	if err != nil {
		return "", nil, err
	}

	var sql strings.Builder
	sql.WriteString("SELECT COUNT(*) AS aggregate FROM ")
	sql.WriteString(wrappedTable)

	whereSQL, args, err := g.CompileWhere(conditions)
	if err != nil {
		return "", nil, err
	}
	if whereSQL != "" {
		sql.WriteString(" ")
		sql.WriteString(whereSQL)
	}

	return sql.String(), args, nil
}
