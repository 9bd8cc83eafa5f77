package simpledb

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

/*
 * ----------------------------------------------------------------------------
 * SIMPLEDB TYPE DEFINITIONS
 * ----------------------------------------------------------------------------
 *
 * Bu dosya, SimpleDB paketinin veri taşıma ve yapılandırma katmanını oluşturur.
 * Ham SQL dünyası ile Go tarafı arasındaki köprü burada kurulur:
 *
 * 1. Result: SELECT ve SELECT-olmayan cümlelerin sonuç şekli tek bir sözleşme
 * altında toplanır; çağıran taraf "satır kümesi mi, etkilenme bayrağı mı"
 * ayrımını güvenle yapar.
 * 2. Pagination: büyük veri setleri yönetilebilir parçalara bölünür.
 * 3. Config: bağlantının sadece "nereye" değil "nasıl" yapılacağı da
 * (pooling, charset, TLS) burada belirlenir. DSN üretimi sürücüye özeldir;
 * MySQL için resmi sürücünün kendi Config/FormatDSN mekanizması kullanılır.
 *
 * @author Ahmet ALTUN
 * @github github.com/biyonik
 * @linkedin linkedin.com/in/biyonik
 * @email ahmet.altun60@gmail.com
 * ----------------------------------------------------------------------------
 */

// ----------------------------------------------------------------------------
// Result Types
// ----------------------------------------------------------------------------

// Result, çalıştırılan bir SQL cümlesinin normalize edilmiş sonucudur.
//
// SELECT ile başlayan cümleler için satır kümesi taşır; diğer tüm cümleler
// için etkilenen satır sayısını taşır. Affected() bilinçli olarak "en az bir
// satır etkilendi mi" sorusuna cevap verir: sıfır satırla eşleşen başarılı bir
// UPDATE false döndürür ve bu bir hata DEĞİLDİR — çağıran taraf ikisini
// birbirine karıştırmamalıdır.
type Result struct {
	rows     RowSet
	affected int64
	selected bool
}

// IsSelect, sonucun bir satır kümesi taşıyıp taşımadığını bildirir.
func (r *Result) IsSelect() bool {
	return r.selected
}

// Rows, SELECT sonuç kümesini döndürür. SELECT-olmayan cümleler için nil'dir.
func (r *Result) Rows() RowSet {
	return r.rows
}

// Affected, en az bir satırın etkilenip etkilenmediğini bildirir.
func (r *Result) Affected() bool {
	return r.affected >= 1
}

// RowsAffected, etkilenen satır sayısını döndürür.
func (r *Result) RowsAffected() int64 {
	return r.affected
}

// ----------------------------------------------------------------------------
// Pagination Types
// ----------------------------------------------------------------------------

// Pagination, listeleme işlemlerinde sayfalama meta verisini yönetir.
// Count ile alınan toplam kayıt sayısından toplam sayfa sayısını ve
// gezinme bayraklarını hesaplar; Offset() fluent zincirdeki OFFSET
// değerini üretir.
type Pagination struct {
	Page       int   // Mevcut sayfa numarası (1'den başlar)
	PerPage    int   // Sayfa başına kayıt sayısı
	Total      int64 // Toplam kayıt sayısı
	TotalPages int   // Hesaplanan toplam sayfa sayısı
	HasMore    bool  // Sonraki sayfa var mı
}

// NewPagination, ham sayfalama parametrelerinden bir Pagination nesnesi üretir.
// Geçersiz parametreler akıllı varsayılanlara çevrilir.
func NewPagination(page, perPage int, total int64) *Pagination {
	if perPage <= 0 {
		perPage = 15
	}
	if page <= 0 {
		page = 1
	}

	totalPages := int(total) / perPage
	if int(total)%perPage > 0 {
		totalPages++
	}

	return &Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
}

// Offset, SQL sorgusu için gerekli başlangıç noktasını hesaplar.
func (p *Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// HasPrev, geriye gidilip gidilemeyeceğini bildirir.
func (p *Pagination) HasPrev() bool {
	return p.Page > 1
}

// HasNext, ileriye gidilip gidilemeyeceğini bildirir.
func (p *Pagination) HasNext() bool {
	return p.HasMore
}

// ----------------------------------------------------------------------------
// Configuration Types
// ----------------------------------------------------------------------------

// Config, veritabanı bağlantısının yapılandırma şemasıdır.
// Host ve porttan fazlasını taşır: havuz ayarları, charset, TLS.
type Config struct {
	Driver       string        // Kullanılacak sürücü: "mysql", "postgres", "sqlite3"
	Host         string        // Veritabanı sunucusunun adresi
	Port         int           // Bağlantı portu
	Database     string        // Veritabanı adı (SQLite için dosya yolu)
	Username     string        // Kullanıcı adı
	Password     string        // Parola
	Charset      string        // Karakter seti (varsayılan: utf8mb4)
	Collation    string        // Sıralama kuralları (varsayılan: utf8mb4_unicode_ci)
	Prefix       string        // Tablo adlarının önüne eklenecek önek
	MaxOpenConns int           // Havuzdaki maksimum açık bağlantı sayısı (0 = sınırsız)
	MaxIdleConns int           // Havuzda boşta bekletilecek maksimum bağlantı sayısı
	ConnMaxLife  time.Duration // Bir bağlantının yaşam süresi
	ConnMaxIdle  time.Duration // Bir bağlantının boşta kalabileceği süre
	TLS          bool          // TLS/SSL zorunluluğu
}

// DefaultConfig, üretime uygun varsayılanlarla dolu bir Config döndürür.
func DefaultConfig() *Config {
	return &Config{
		Driver:       "mysql",
		Host:         "localhost",
		Port:         3306,
		Charset:      "utf8mb4",
		Collation:    "utf8mb4_unicode_ci",
		MaxOpenConns: 25,
		MaxIdleConns: 5,
		ConnMaxLife:  5 * time.Minute,
		ConnMaxIdle:  5 * time.Minute,
	}
}

// ConfigFromEnv, yapılandırmayı ortam değişkenlerinden okur. Çalışma dizininde
// bir .env dosyası varsa önce godotenv ile yüklenir; dosyanın yokluğu hata
// değildir. Tanımsız değişkenler DefaultConfig değerlerinde kalır.
//
// Okunan değişkenler: DB_DRIVER, DB_HOST, DB_PORT, DB_DATABASE, DB_USERNAME,
// DB_PASSWORD, DB_CHARSET, DB_COLLATION, DB_PREFIX.
func ConfigFromEnv() *Config {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if v := os.Getenv("DB_DRIVER"); v != "" {
		cfg.Driver = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("DB_DATABASE"); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv("DB_USERNAME"); v != "" {
		cfg.Username = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Password = v
	}
	if v := os.Getenv("DB_CHARSET"); v != "" {
		cfg.Charset = v
	}
	if v := os.Getenv("DB_COLLATION"); v != "" {
		cfg.Collation = v
	}
	if v := os.Getenv("DB_PREFIX"); v != "" {
		cfg.Prefix = v
	}

	return cfg
}

// DSN, sürücünün anlayacağı bağlantı dizesini üretir.
//
// MySQL için resmi sürücünün Config/FormatDSN mekanizması kullanılır; elle
// string birleştirmekten hem daha güvenli hem de sürücünün tüm parametre
// kurallarıyla uyumludur. PostgreSQL için keyword/value formatı, SQLite için
// doğrudan dosya yolu üretilir.
func (c *Config) DSN() string {
	switch c.Driver {
	case "postgres":
		sslmode := "disable"
		if c.TLS {
			sslmode = "require"
		}
		dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s", c.Host, c.Port, c.Database, sslmode)
		if c.Username != "" {
			dsn += " user=" + c.Username
		}
		if c.Password != "" {
			dsn += " password=" + c.Password
		}
		return dsn

	case "sqlite3", "sqlite":
		return c.Database

	default:
		mc := mysql.NewConfig()
		mc.User = c.Username
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = c.Host
		if c.Port > 0 {
			mc.Addr = c.Host + ":" + strconv.Itoa(c.Port)
		}
		mc.DBName = c.Database
		mc.ParseTime = true
		if c.Collation != "" {
			mc.Collation = c.Collation
		}
		if c.Charset != "" {
			mc.Params = map[string]string{"charset": c.Charset}
		}
		if c.TLS {
			mc.TLSConfig = "true"
		}
		return mc.FormatDSN()
	}
}

// ----------------------------------------------------------------------------
// Logger Interface
// ----------------------------------------------------------------------------

// Logger, sistemin kara kutusudur. Debug modu açıkken çalıştırılan her SQL
// cümlesi, parametreleri, süresi ve olası hatasıyla birlikte buraya akar.
type Logger interface {
	Log(query string, args []any, duration time.Duration, err error)
}

// NopLogger, "sessiz mod" için kullanılan logger uygulamasıdır.
// Tüm logları yutar ve hiçbir işlem yapmaz.
type NopLogger struct{}

// Log, NopLogger'ın implementasyonudur. Gelen tüm veriyi yok sayar.
func (NopLogger) Log(string, []any, time.Duration, error) {}

// SlogLogger, standart kütüphanenin yapılandırılmış log/slog paketine yazan
// Logger uygulamasıdır. Başarılı sorgular Debug, hatalı sorgular Error
// seviyesinde loglanır.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger, verilen slog.Logger üzerine yazan bir SlogLogger üretir.
// nil verilirse slog.Default() kullanılır.
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogLogger{logger: logger}
}

// Log, sorguyu yapılandırılmış alanlarla kaydeder.
func (l *SlogLogger) Log(query string, args []any, duration time.Duration, err error) {
	if err != nil {
		l.logger.Error("query failed",
			"query", query,
			"args", args,
			"duration", duration,
			"error", err,
		)
		return
	}
	l.logger.Debug("query executed",
		"query", query,
		"args", args,
		"duration", duration,
	)
}
