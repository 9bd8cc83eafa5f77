package simpledb

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/biyonik/go-simple-db/dialect"
)

/*
=======================================================================================================================
  💠 SIMPLE DB – Veritabanıyla Konuşmanın En Kısa Yolu 💠
  Bu dosya; Go'nun standart `database/sql` yapısını sqlx ile zenginleştirip üzerine,
  Laravel'in DB facade'ı gibi, map tabanlı ve insan-diline yakın bir CRUD deneyimi katmak
  amacıyla oluşturulmuştur.

  Bu yapı sayesinde:
  - `db.Insert("users", map[string]any{...})` benzeri doğal bir ifade gücü kazanırız.
  - Her cümle dialect.Grammar üzerinden derlenir: değerler HER ZAMAN parametre olarak
    bağlanır, identifier'lar ise doğrulamadan geçmeden SQL metnine giremez.
  - Çalıştırılan her cümle tek noktadan geçer ve sorgu günlüğüne düşer; DB katmanı
    yalnızca veri okuyan değil, ne yaptığını raporlayan bir iş ortağına dönüşür.

  Bu tasarım yapılırken hedef şuydu:
  🔹 "Neyi yapıyorum?" — Map'lerden güvenli SQL kuruyorum.
  🔹 "Nasıl yapıyorum?" — Grammar ile derleyip prepared statement ile çalıştırarak.
  🔹 "Neden böyle yapıyorum?" — Hem güvenlik hem geliştirici ergonomisi aynı anda elimde olsun diye.

  @author    Ahmet ALTUN
  @github    github.com/biyonik
  @linkedin  linkedin.com/in/biyonik
  @email     ahmet.altun60@gmail.com
=======================================================================================================================
*/

// DB struct'ı veritabanı bağlantısını sarar ve üzerine grammar, logging, prefix gibi
// davranışları belirleyen özellikler ekler. Böylece DB artık yalnızca bağlanılan yer
// değil, sorguyu şekillendiren ve işleyen ana merkez olur.
//
// Bağlantı havuzu *sqlx.DB'ye aittir ve eşzamanlı kullanıma uygundur; fluent
// zincirler ise çağrı başına ayrı değerler üzerinde çalışır (bkz. fluent.go).
// ---------------------------------------------------------------------
type DB struct {
	*sqlx.DB                 // sqlx ile zenginleştirilmiş standart DB nesnesi gömülü bulunur.
	grammar  dialect.Grammar // SQL cümle yapısını oluşturur (MySQL / PostgreSQL / SQLite)
	logger   Logger          // İsteğe bağlı kayıtlama sistemi, debug durumunda detay sağlar.
	queryLog *QueryLog       // Çalıştırılan her cümlenin append-only günlüğü.
	debug    bool            // Sorgular logger'a da yazılsın mı?
	prefix   string          // Tablo adlarının önüne otomatik eklenen global prefix.
	lastID   atomic.Int64    // Bu facade üzerinden yapılan son insert'in ürettiği kimlik.
}

// NewDB -> DB sarmalayıcısının oluşturulduğu yerdir.
// Grammar belirtilmezse sürücü adından otomatik seçilir; geliştirici yalnızca
// sqlx.DB verip gerisini bu wrapper'a teslim eder.
// ---------------------------------------------------------------------
func NewDB(db *sqlx.DB, opts ...Option) *DB {
	d := &DB{
		DB:       db,
		logger:   NopLogger{},
		queryLog: NewQueryLog(),
	}

	applyOptions(d, opts)

	if d.grammar == nil {
		d.grammar = dialect.ForDriver(db.DriverName())
	}

	return d
}

// Grammar -> Aktif SQL cümle oluşturma motorunu döndürür.
func (d *DB) Grammar() dialect.Grammar {
	return d.grammar
}

// Logger -> Sorgu izleme sistemine dışarıdan erişim sağlar.
func (d *DB) Logger() Logger {
	return d.logger
}

// Log -> Çalıştırılan cümlelerin append-only günlüğünü döndürür.
func (d *DB) Log() *QueryLog {
	return d.queryLog
}

// TablePrefix -> Tüm tabloların başına eklenen ön-ek değerini döndürür.
func (d *DB) TablePrefix() string {
	return d.prefix
}

// IsDebug -> Debug modunda mıyız? Sorgular logger'a yazılacak mı? Bilgi verir.
func (d *DB) IsDebug() bool {
	return d.debug
}

// Ping -> Bağlantı canlı mı? Kontrol eder.
func (d *DB) Ping(ctx context.Context) error {
	return d.DB.PingContext(ctx)
}

// Close -> Veritabanı bağlantısını kapatır.
func (d *DB) Close() error {
	return d.DB.Close()
}

// prefixed -> Tablo adına global prefix'i uygular.
func (d *DB) prefixed(table string) string {
	return d.prefix + table
}

// ---------------------------------------------------------------------
// Statement Executor
// ---------------------------------------------------------------------

// isSelect, cümlenin satır kümesi döndüren türden olup olmadığını belirler.
// Baştaki boşluklar kırpılır, karşılaştırma büyük/küçük harf duyarsızdır.
func isSelect(query string) bool {
	trimmed := strings.TrimSpace(query)
	if len(trimmed) < 6 {
		return false
	}
	return strings.EqualFold(trimmed[:6], "SELECT")
}

// run, tüm public operasyonların geçtiği tek yürütme noktasıdır. Cümleyi
// çalıştırır, süresini ölçer, sorgu günlüğüne düşer ve debug modunda logger'a
// yazar. Hatalar DBError olarak sarılır; hiçbir durumda retry yapılmaz.
func (d *DB) run(ctx context.Context, op, query string, args []any) (*Result, error) {
	start := time.Now()
	res, err := d.dispatch(ctx, query, args)
	elapsed := time.Since(start)

	d.queryLog.append(QueryLogEntry{
		Query:    query,
		Args:     args,
		Duration: elapsed,
		Err:      err,
		At:       start,
	})

	if d.debug {
		d.logger.Log(query, args, elapsed, err)
	}

	if err != nil {
		return nil, NewDBError(op, query, err)
	}
	return res, nil
}

// dispatch, cümleyi türüne göre yürütür: SELECT'ler satır kümesine, diğerleri
// etkilenme bilgisine normalize edilir. Insert sonrası sürücünün bildirdiği
// kimlik saklanır (PostgreSQL gibi desteklemeyen sürücülerde atlanır).
func (d *DB) dispatch(ctx context.Context, query string, args []any) (*Result, error) {
	if isSelect(query) {
		rows, err := d.DB.QueryxContext(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		set, err := scanRowSet(rows)
		if err != nil {
			return nil, err
		}
		return &Result{rows: set, selected: true}, nil
	}

	res, err := d.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}

	if id, idErr := res.LastInsertId(); idErr == nil && id > 0 {
		d.lastID.Store(id)
	}

	return &Result{affected: affected}, nil
}

// ExecuteContext -> Ham SQL geçişidir (raw passthrough). Cümle hiçbir clause
// derlemesinden geçmeden olduğu gibi çalıştırılır; değerler yine parametre
// olarak bağlanır. SELECT için satır kümesi, diğer cümleler için etkilenme
// bilgisi taşıyan bir Result döner.
func (d *DB) ExecuteContext(ctx context.Context, query string, args ...any) (*Result, error) {
	return d.run(ctx, "execute", query, args)
}

// Execute, ExecuteContext'in context.Background() versiyonudur.
func (d *DB) Execute(query string, args ...any) (*Result, error) {
	return d.ExecuteContext(context.Background(), query, args...)
}

// ---------------------------------------------------------------------
// CRUD Operations
// ---------------------------------------------------------------------

// InsertContext, tek satır ekler. En az bir satır eklendiyse true döner.
// Boş veri map'i ErrNoColumns üretir.
func (d *DB) InsertContext(ctx context.Context, table string, data map[string]any) (bool, error) {
	query, args, err := d.grammar.CompileInsert(d.prefixed(table), data)
	if err != nil {
		return false, err
	}

	res, err := d.run(ctx, "insert", query, args)
	if err != nil {
		return false, err
	}
	return res.Affected(), nil
}

// Insert, InsertContext'in context.Background() versiyonudur.
func (d *DB) Insert(table string, data map[string]any) (bool, error) {
	return d.InsertContext(context.Background(), table, data)
}

// InsertManyContext, tek bir çok satırlı INSERT cümlesiyle birden fazla satır
// ekler. Tüm satırlar aynı kolon kümesini taşımalıdır; boş liste ErrEmptyBatch,
// uyumsuz kolonlar ErrInconsistentBatch üretir.
func (d *DB) InsertManyContext(ctx context.Context, table string, rows []map[string]any) (bool, error) {
	query, args, err := d.grammar.CompileInsertBatch(d.prefixed(table), rows)
	if err != nil {
		return false, err
	}

	res, err := d.run(ctx, "insert many", query, args)
	if err != nil {
		return false, err
	}
	return res.Affected(), nil
}

// InsertMany, InsertManyContext'in context.Background() versiyonudur.
func (d *DB) InsertMany(table string, rows []map[string]any) (bool, error) {
	return d.InsertManyContext(context.Background(), table, rows)
}

// UpdateContext, koşullara uyan satırları günceller. conditions boş verilirse
// TÜM satırlar güncellenir — bilinçli kullanılmalıdır. Dönen bool en az bir
// satırın etkilendiğini bildirir; sıfır eşleşme hata değildir.
func (d *DB) UpdateContext(ctx context.Context, table string, data, conditions map[string]any) (bool, error) {
	query, args, err := d.grammar.CompileUpdate(d.prefixed(table), data, conditions)
	if err != nil {
		return false, err
	}

	res, err := d.run(ctx, "update", query, args)
	if err != nil {
		return false, err
	}
	return res.Affected(), nil
}

// Update, UpdateContext'in context.Background() versiyonudur.
func (d *DB) Update(table string, data, conditions map[string]any) (bool, error) {
	return d.UpdateContext(context.Background(), table, data, conditions)
}

// DeleteContext, koşullara uyan satırları siler. conditions boş verilirse TÜM
// tablo silinir. Çok tehlikeli! — bilinçli kullanılmalıdır.
func (d *DB) DeleteContext(ctx context.Context, table string, conditions map[string]any) (bool, error) {
	query, args, err := d.grammar.CompileDelete(d.prefixed(table), conditions)
	if err != nil {
		return false, err
	}

	res, err := d.run(ctx, "delete", query, args)
	if err != nil {
		return false, err
	}
	return res.Affected(), nil
}

// Delete, DeleteContext'in context.Background() versiyonudur.
func (d *DB) Delete(table string, conditions map[string]any) (bool, error) {
	return d.DeleteContext(context.Background(), table, conditions)
}

// FindContext, koşullara uyan ilk satırı döndürür; cümleye her zaman LIMIT 1
// eklenir. Eşleşme yoksa (nil, nil) döner — nil Row "bulunamadı" işaretidir,
// hata DEĞİLDİR.
func (d *DB) FindContext(ctx context.Context, table string, conditions map[string]any) (Row, error) {
	limit := 1
	query, args, err := d.grammar.CompileSelect(d.prefixed(table), nil, conditions, &limit, nil)
	if err != nil {
		return nil, err
	}

	res, err := d.run(ctx, "find", query, args)
	if err != nil {
		return nil, err
	}

	rows := res.Rows()
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// Find, FindContext'in context.Background() versiyonudur.
func (d *DB) Find(table string, conditions map[string]any) (Row, error) {
	return d.FindContext(context.Background(), table, conditions)
}

// FindAllContext, koşullara uyan tüm satırları döndürür. Sonuç kümesi boş
// olabilir; bu bir hata değildir.
func (d *DB) FindAllContext(ctx context.Context, table string, conditions map[string]any) (RowSet, error) {
	query, args, err := d.grammar.CompileSelect(d.prefixed(table), nil, conditions, nil, nil)
	if err != nil {
		return nil, err
	}

	res, err := d.run(ctx, "find all", query, args)
	if err != nil {
		return nil, err
	}
	return res.Rows(), nil
}

// FindAll, FindAllContext'in context.Background() versiyonudur.
func (d *DB) FindAll(table string, conditions map[string]any) (RowSet, error) {
	return d.FindAllContext(context.Background(), table, conditions)
}

// CountContext, koşullara uyan satır sayısını COUNT(*) ile döndürür.
func (d *DB) CountContext(ctx context.Context, table string, conditions map[string]any) (int64, error) {
	query, args, err := d.grammar.CompileCount(d.prefixed(table), conditions)
	if err != nil {
		return 0, err
	}

	res, err := d.run(ctx, "count", query, args)
	if err != nil {
		return 0, err
	}

	rows := res.Rows()
	if len(rows) == 0 {
		return 0, nil
	}
	return toInt64(rows[0]["aggregate"]), nil
}

// Count, CountContext'in context.Background() versiyonudur.
func (d *DB) Count(table string, conditions map[string]any) (int64, error) {
	return d.CountContext(context.Background(), table, conditions)
}

// LastInsertID, bu facade üzerinden yapılan son insert'in sürücü tarafından
// bildirilen kimliğini döndürür. Henüz insert yapılmadıysa 0 döner; değer
// sürücüye bağımlıdır (PostgreSQL LastInsertId desteklemez ve 0 bildirir).
func (d *DB) LastInsertID() int64 {
	return d.lastID.Load()
}

// ---------------------------------------------------------------------
// Schema Introspection
// ---------------------------------------------------------------------

// TableExistsContext, tablonun şema kataloğunda kayıtlı olup olmadığını
// bildirir. Her türde yürütme hatası (bağlantı kopması, yetki hatası dahil)
// false'a çevrilir; "tablo yok" ile "sorgu başarısız" bu sözleşmede ayırt
// EDİLEMEZ. Kesin ayrım gerektiren çağıran taraf ExecuteContext ile katalog
// sorgusunu kendisi çalıştırmalıdır.
func (d *DB) TableExistsContext(ctx context.Context, table string) bool {
	query, args := d.grammar.TableExistsQuery(d.prefixed(table))

	res, err := d.run(ctx, "table exists", query, args)
	if err != nil {
		return false
	}
	return len(res.Rows()) > 0
}

// TableExists, TableExistsContext'in context.Background() versiyonudur.
func (d *DB) TableExists(table string) bool {
	return d.TableExistsContext(context.Background(), table)
}

// ColumnExistsContext, kolonun şema kataloğunda kayıtlı olup olmadığını
// bildirir. Hata davranışı TableExistsContext ile aynıdır.
func (d *DB) ColumnExistsContext(ctx context.Context, table, column string) bool {
	query, args := d.grammar.ColumnExistsQuery(d.prefixed(table), column)

	res, err := d.run(ctx, "column exists", query, args)
	if err != nil {
		return false
	}
	return len(res.Rows()) > 0
}

// ColumnExists, ColumnExistsContext'in context.Background() versiyonudur.
func (d *DB) ColumnExists(table, column string) bool {
	return d.ColumnExistsContext(context.Background(), table, column)
}
