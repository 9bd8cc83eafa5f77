package simpledb

import (
	"github.com/jmoiron/sqlx"

	_ "github.com/go-sql-driver/mysql" // MySQL sürücüsü
	_ "github.com/lib/pq"              // PostgreSQL sürücüsü
	_ "github.com/mattn/go-sqlite3"    // SQLite sürücüsü
)

/*
=======================================================================================================================
  💠 SIMPLE DB – Giriş Kapısı 💠
  Bu dosya; kütüphaneye adım atılan ilk noktadır. Bağlantı kurma (Connect /
  ConnectWithConfig) ve ham SQL taşıyıcısı (Raw) burada yaşar.

  Desteklenen üç sürücü (mysql, postgres, sqlite3) blank import ile kayıt
  edilir; geliştirici ayrıca sürücü import etmek zorunda kalmaz.

  @author    Ahmet ALTUN
  @github    github.com/biyonik
  @linkedin  linkedin.com/in/biyonik
  @email     ahmet.altun60@gmail.com
=======================================================================================================================
*/

// Version, kütüphanenin sürüm numarasıdır.
const Version = "1.0.0"

// Connect -> Verilen sürücü ve DSN ile bağlantı kurar, bağlantıyı doğrular
// (ping) ve DB facade'ını döndürür. Grammar, sürücü adından otomatik seçilir;
// WithGrammar ile ezilebilir.
func Connect(driverName, dataSourceName string, opts ...Option) (*DB, error) {
	db, err := sqlx.Connect(driverName, dataSourceName)
	if err != nil {
		return nil, WrapError("connect", err)
	}
	return NewDB(db, opts...), nil
}

// ConnectWithConfig -> Config struct'ından DSN üretip bağlanır ve havuz
// ayarlarını (MaxOpenConns vb.) uygular. Ortam değişkenleriyle çalışmak
// isteyenler için ConfigFromEnv ile birlikte kullanılır.
func ConnectWithConfig(cfg *Config, opts ...Option) (*DB, error) {
	d, err := Connect(cfg.Driver, cfg.DSN(), opts...)
	if err != nil {
		return nil, err
	}

	if cfg.Prefix != "" && d.prefix == "" {
		d.prefix = cfg.Prefix
	}
	if cfg.MaxOpenConns > 0 {
		d.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		d.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLife > 0 {
		d.SetConnMaxLifetime(cfg.ConnMaxLife)
	}
	if cfg.ConnMaxIdle > 0 {
		d.SetConnMaxIdleTime(cfg.ConnMaxIdle)
	}

	return d, nil
}

// Raw struct'ı clause derlemesinden geçmeyecek ham bir SQL cümlesini ve
// parametrelerini taşır. Fluent zincirin FetchWithOffset terminaline source
// olarak verilebilir; cümle olduğu gibi çalıştırılır.
//
// Örnek:
//
//	rows, err := db.FetchWithOffset(simpledb.NewRaw(
//	    "SELECT u.name, COUNT(o.id) AS total FROM users u JOIN orders o ON o.user_id = u.id GROUP BY u.name HAVING COUNT(o.id) > ?",
//	    5,
//	), nil)
type Raw struct {
	SQL      string
	Bindings []any
}

// NewRaw -> Ham SQL taşıyıcısı oluşturur.
func NewRaw(sql string, bindings ...any) Raw {
	return Raw{SQL: sql, Bindings: bindings}
}

// String -> Cümlenin metnini döndürür (log ve hata mesajları için).
func (r Raw) String() string {
	return r.SQL
}
