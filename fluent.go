package simpledb

import (
	"context"
	"fmt"
)

/*
=======================================================================================================================
  💠 SIMPLE DB – Akıcı Sorgu Zinciri (Fluent Finder) 💠
  Bu dosya; `db.Select("id", "name").Limit(10).Offset(20).FetchWithOffset("users", conds)`
  şeklindeki zincirleme kullanım deneyimini sağlamak amacıyla oluşturulmuştur.

  Kritik tasarım kararı: zincir durumu DB üzerinde DEĞİL, çağrı başına üretilen
  Finder değeri üzerinde tutulur. DB'deki Select/Limit/Offset çağrıları her
  seferinde taze bir Finder başlatır; böylece eşzamanlı goroutine'ler aynı DB
  üzerinde zincir kursa bile birbirlerinin kolon/limit seçimlerini EZEMEZ.
  Terminal fetch çağrısı Finder'ı tüketir; bir sonraki zincir sıfırdan başlar.

  @author    Ahmet ALTUN
  @github    github.com/biyonik
  @linkedin  linkedin.com/in/biyonik
  @email     ahmet.altun60@gmail.com
=======================================================================================================================
*/

// Finder struct'ı tek bir sorgu zincirinin birikmiş durumunu taşır: seçilecek
// kolonlar, limit ve offset. DB'ye geri yazmaz; değer çağrı başına yaşar.
// ---------------------------------------------------------------------
type Finder struct {
	db      *DB
	columns []string
	limit   *int
	offset  *int
}

// Select -> Yeni bir zincir başlatır ve sonuç kümesinde dönecek kolonları
// belirler. Hiç kolon verilmezse (veya zincir Select'siz başlarsa) tüm
// kolonlar (*) seçilir.
func (d *DB) Select(columns ...string) *Finder {
	return &Finder{db: d, columns: columns}
}

// Limit -> Yeni bir zincir başlatır ve satır sayısı üst sınırını belirler.
func (d *DB) Limit(limit int) *Finder {
	return (&Finder{db: d}).Limit(limit)
}

// Offset -> Yeni bir zincir başlatır ve atlanacak satır sayısını belirler.
func (d *DB) Offset(offset int) *Finder {
	return (&Finder{db: d}).Offset(offset)
}

// FetchWithOffsetContext -> Zincir kurmadan doğrudan fetch: tüm kolonlar,
// limit/offset yok.
func (d *DB) FetchWithOffsetContext(ctx context.Context, source any, conditions map[string]any) (RowSet, error) {
	return (&Finder{db: d}).FetchWithOffsetContext(ctx, source, conditions)
}

// FetchWithOffset, FetchWithOffsetContext'in context.Background() versiyonudur.
func (d *DB) FetchWithOffset(source any, conditions map[string]any) (RowSet, error) {
	return d.FetchWithOffsetContext(context.Background(), source, conditions)
}

// Select -> Zincirdeki kolon seçimini değiştirir.
func (f *Finder) Select(columns ...string) *Finder {
	f.columns = columns
	return f
}

// Limit -> Zincire satır sayısı üst sınırı ekler.
func (f *Finder) Limit(limit int) *Finder {
	f.limit = &limit
	return f
}

// Offset -> Zincire atlanacak satır sayısını ekler.
func (f *Finder) Offset(offset int) *Finder {
	f.offset = &offset
	return f
}

// ForPage -> Sayfalama kısayoludur: LIMIT perPage, OFFSET (page-1)*perPage.
// page 1'den başlar; geçersiz değerler 1. sayfaya çekilir.
func (f *Finder) ForPage(page, perPage int) *Finder {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	offset := (page - 1) * perPage
	f.limit = &perPage
	f.offset = &offset
	return f
}

// FetchWithOffsetContext, zincirin terminal operasyonudur. source bir tablo
// adı (string) ya da ham SQL (Raw / *Raw) olabilir:
//
//   - string  → zincirdeki kolon/limit/offset ile bir SELECT derlenir,
//     conditions WHERE koşullarına bağlanır.
//   - Raw     → cümle olduğu gibi çalıştırılır; zincirdeki kolon/limit/offset
//     ve conditions YOK sayılır (cümlenin sahibi çağırandır).
//
// Başka herhangi bir tür ErrInvalidSource üretir. Sonuç kümesi boş olabilir;
// bu bir hata değildir.
func (f *Finder) FetchWithOffsetContext(ctx context.Context, source any, conditions map[string]any) (RowSet, error) {
	switch src := source.(type) {
	case string:
		query, args, err := f.db.grammar.CompileSelect(f.db.prefixed(src), f.columns, conditions, f.limit, f.offset)
		if err != nil {
			return nil, err
		}
		res, err := f.db.run(ctx, "fetch", query, args)
		if err != nil {
			return nil, err
		}
		return res.Rows(), nil
	case Raw:
		res, err := f.db.run(ctx, "fetch raw", src.SQL, src.Bindings)
		if err != nil {
			return nil, err
		}
		return res.Rows(), nil
	case *Raw:
		if src == nil {
			return nil, fmt.Errorf("%w: nil raw query", ErrInvalidSource)
		}
		res, err := f.db.run(ctx, "fetch raw", src.SQL, src.Bindings)
		if err != nil {
			return nil, err
		}
		return res.Rows(), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidSource, source)
	}
}

// FetchWithOffset, FetchWithOffsetContext'in context.Background() versiyonudur.
func (f *Finder) FetchWithOffset(source any, conditions map[string]any) (RowSet, error) {
	return f.FetchWithOffsetContext(context.Background(), source, conditions)
}
