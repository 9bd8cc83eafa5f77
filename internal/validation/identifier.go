// Package validation, SQL metnine enterpolasyonla giren tablo ve kolon adlarının
// güvenli olup olmadığını denetleyen dahili yardımcıları içerir. Değerler her zaman
// prepared-statement parametresi olarak bağlanır; identifier'lar ise bağlanamaz ve
// doğrudan SQL metnine yazılır. Bu paket, o metne yalnızca beyaz listeye uyan
// isimlerin girmesini garanti eden son savunma hattıdır.
//
// Doğrulama şu soruları cevaplar:
// 1. Bu isim geçerli bir SQL identifier mı? (harf, rakam, alt çizgi, tek nokta)
// 2. Alias kullanılmışsa ("users u", "users as u"), alias da geçerli mi?
//
// Başarısız doğrulamalar detaylı bir `IdentifierError` döndürür.
//
// @author Ahmet ALTUN
// @github github.com/biyonik
// @linkedin linkedin.com/in/biyonik
// @email ahmet.altun60@gmail.com
package validation

import (
	"regexp"
	"strings"
)

// identifierRegex, tablo ve kolon adları için geçerli identifier'ları doğrular.
// İlk karakter harf veya alt çizgi olmalıdır; tek nokta table.column formatını destekler.
var identifierRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)?$`)

// aliasRegex, "table as alias" veya "table alias" formatlarını eşler.
var aliasRegex = regexp.MustCompile(`(?i)^([a-zA-Z_][a-zA-Z0-9_]*)\s+(?:as\s+)?([a-zA-Z_][a-zA-Z0-9_]*)$`)

// ValidateIdentifier, verilen identifier'ın SQL metnine yazılmaya uygun olup
// olmadığını kontrol eder. Başarılıysa nil, geçersizse açıklayıcı bir hata döner.
func ValidateIdentifier(id string) error {
	if id == "" {
		return &IdentifierError{
			Identifier: id,
			Reason:     "identifier cannot be empty",
		}
	}

	if len(id) > 128 {
		return &IdentifierError{
			Identifier: id,
			Reason:     "identifier exceeds maximum length of 128 characters",
		}
	}

	if !identifierRegex.MatchString(id) {
		return &IdentifierError{
			Identifier: id,
			Reason:     "identifier contains invalid characters; only letters, numbers, underscores, and dots are allowed",
		}
	}

	return nil
}

// ValidateTableWithAlias, bir tablo referansını (alias ile birlikte olabilir) doğrular.
// Desteklenen formatlar: "table", "table alias", "table as alias".
// Döndürür: tablo adı, alias (varsa) ve hata.
func ValidateTableWithAlias(table string) (name, alias string, err error) {
	if table == "" {
		return "", "", &IdentifierError{
			Identifier: table,
			Reason:     "table name cannot be empty",
		}
	}

	matches := aliasRegex.FindStringSubmatch(table)
	if matches != nil {
		name = matches[1]
		alias = matches[2]

		if err := ValidateIdentifier(name); err != nil {
			return "", "", err
		}
		if err := ValidateIdentifier(alias); err != nil {
			return "", "", &IdentifierError{
				Identifier: alias,
				Reason:     "invalid alias: " + err.Error(),
			}
		}

		return name, alias, nil
	}

	if err := ValidateIdentifier(table); err != nil {
		return "", "", err
	}

	return table, "", nil
}

// ValidateColumn, bir kolon referansını doğrular.
// Desteklenen formatlar: "column", "table.column".
func ValidateColumn(column string) error {
	return ValidateIdentifier(column)
}

// SplitTableColumn, "table.column" formatındaki referansı parçalar.
// Döndürür: tablo (boşsa ""), kolon ve hata.
func SplitTableColumn(ref string) (table, column string, err error) {
	parts := strings.Split(ref, ".")
	switch len(parts) {
	case 1:
		if err := ValidateIdentifier(parts[0]); err != nil {
			return "", "", err
		}
		return "", parts[0], nil
	case 2:
		if err := ValidateIdentifier(parts[0]); err != nil {
			return "", "", err
		}
		if err := ValidateIdentifier(parts[1]); err != nil {
			return "", "", err
		}
		return parts[0], parts[1], nil
	default:
		return "", "", &IdentifierError{
			Identifier: ref,
			Reason:     "column reference can have at most one dot (table.column)",
		}
	}
}

// IdentifierError, identifier doğrulama hatalarını temsil eder.
type IdentifierError struct {
	Identifier string
	Reason     string
}

// Error, error arayüzünü uygular.
func (e *IdentifierError) Error() string {
	if e.Identifier == "" {
		return "simpledb: invalid identifier: " + e.Reason
	}
	return "simpledb: invalid identifier '" + e.Identifier + "': " + e.Reason
}
