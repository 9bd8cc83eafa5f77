package simpledb

import (
	"sync"
	"time"
)

// -----------------------------------------------------------------------------
//  Query Log — Bağlantının Hafızası
//
//  Bu dosya, facade üzerinden çalıştırılan HER SQL cümlesinin kaydını tutan
//  append-only günlüğü içerir. Kayıt tek noktada, statement executor içinde
//  yapılır; böylece hangi public metot kullanılırsa kullanılsın (CRUD, fluent
//  zincir, raw passthrough, katalog yoklamaları) günlük eksiksiz kalır.
//
//  Günlük sınırsızdır: boyut sınırı veya rotasyon yoktur. Uzun ömürlü bir
//  süreçte bellek kullanımını sınırlamak isteyen çağıran taraf, periyodik
//  olarak Reset() çağırmalıdır.
//
//  -- @author   Ahmet ALTUN
//  -- @github   github.com/biyonik
//  -- @linkedin linkedin.com/in/biyonik
//  -- @email    ahmet.altun60@gmail.com
// -----------------------------------------------------------------------------

// QueryLogEntry, çalıştırılmış tek bir SQL cümlesinin kaydıdır.
// Günlüğe eklendikten sonra değiştirilmez.
type QueryLogEntry struct {
	Query    string        // Çalıştırılan SQL metni
	Args     []any         // Sıralı bağlı parametreler
	Duration time.Duration // Cümlenin toplam yürütme süresi
	Err      error         // Yürütme hatası, başarılıysa nil
	At       time.Time     // Yürütmenin başladığı an
}

// QueryLog, append-only sorgu günlüğüdür. Tüm metotları eşzamanlı kullanım
// için güvenlidir.
type QueryLog struct {
	mu      sync.Mutex
	entries []QueryLogEntry
}

// NewQueryLog, boş bir sorgu günlüğü oluşturur.
func NewQueryLog() *QueryLog {
	return &QueryLog{}
}

// append, yeni bir kaydı günlüğe ekler. Args kopyalanır; çağıranın slice'ı
// sonradan değişse bile kayıt sabit kalır.
func (l *QueryLog) append(entry QueryLogEntry) {
	args := make([]any, len(entry.Args))
	copy(args, entry.Args)
	entry.Args = args

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()
}

// Entries, günlüğün o anki kopyasını döndürür. Dönen slice çağırana aittir;
// üzerinde yapılan değişiklik günlüğü etkilemez.
func (l *QueryLog) Entries() []QueryLogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]QueryLogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len, günlükteki kayıt sayısını döndürür.
func (l *QueryLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Last, günlükteki son kaydı döndürür. Günlük boşsa ikinci değer false olur.
func (l *QueryLog) Last() (QueryLogEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) == 0 {
		return QueryLogEntry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Reset, günlüğü temizler. Bellek kullanımını sınırlamak çağıranın işidir.
func (l *QueryLog) Reset() {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()
}
