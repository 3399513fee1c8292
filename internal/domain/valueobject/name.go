package valueobject

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// NameMaxRunes はフォルダ名・ファイル名の最大文字数です
const NameMaxRunes = 255

var (
	ErrNameEmpty          = errors.New("name cannot be empty")
	ErrNameTooLong        = errors.New("name too long")
	ErrNameForbiddenChars = errors.New("name contains forbidden characters")
	ErrNameReserved       = errors.New("name is reserved")
)

// forbiddenNameChars はフォルダ名・ファイル名に使用できない文字
var forbiddenNameChars = "/\\:*?\"<>|"

// NormalizeName は名前を比較用の正規形に変換します。
// 前後の空白を除去しNFCへ正規化します。大文字小文字は区別します。
// 兄弟間の一意性判定はこの正規形同士の完全一致で行います。
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// parseName は正規化と検証を行います
func parseName(name string) (string, error) {
	normalized := NormalizeName(name)

	if normalized == "" {
		return "", ErrNameEmpty
	}
	if normalized == "." || normalized == ".." {
		return "", ErrNameReserved
	}
	if utf8.RuneCountInString(normalized) > NameMaxRunes {
		return "", ErrNameTooLong
	}
	if strings.ContainsAny(normalized, forbiddenNameChars) {
		return "", ErrNameForbiddenChars
	}
	for _, r := range normalized {
		if r < 0x20 || r == 0x7f {
			return "", ErrNameForbiddenChars
		}
	}
	return normalized, nil
}
