package simpledb

import "github.com/biyonik/go-simple-db/dialect"

/*
=======================================================================================================================
  💠 SIMPLE DB – Fonksiyonel Seçenekler 💠
  Bu dosya; DB facade'ının davranışını kurulum anında şekillendiren Option
  fonksiyonlarını barındırır. Functional options deseni sayesinde NewDB ve
  Connect imzaları sade kalır, yeni ayarlar geriye dönük uyumlu eklenebilir.

  @author    Ahmet ALTUN
  @github    github.com/biyonik
  @linkedin  linkedin.com/in/biyonik
  @email     ahmet.altun60@gmail.com
=======================================================================================================================
*/

// Option -> DB kurulumunu özelleştiren fonksiyon tipidir.
type Option func(*DB)

// applyOptions -> Verilen seçenekleri sırayla uygular.
func applyOptions(d *DB, opts []Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
}

// WithGrammar -> Sürücüden otomatik seçilen grammar yerine verilen grammar'ı
// kullanır. Özel lehçe davranışı gerektiğinde işe yarar.
func WithGrammar(g dialect.Grammar) Option {
	return func(d *DB) {
		if g != nil {
			d.grammar = g
		}
	}
}

// WithLogger -> Sorgu izleme için logger atar ve debug modunu açar.
func WithLogger(l Logger) Option {
	return func(d *DB) {
		if l != nil {
			d.logger = l
			d.debug = true
		}
	}
}

// WithDebug -> Debug modunu açıp kapatır. Debug açıkken her cümle logger'a da
// yazılır; kapalıyken yalnızca sorgu günlüğüne düşer.
func WithDebug(debug bool) Option {
	return func(d *DB) {
		d.debug = debug
	}
}

// WithTablePrefix -> Tüm tablo adlarının önüne eklenen global ön-eki belirler.
// Çok kiracılı (multi-tenant) ya da paylaşımlı şema senaryolarında kullanılır.
func WithTablePrefix(prefix string) Option {
	return func(d *DB) {
		d.prefix = prefix
	}
}
