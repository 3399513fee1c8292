package valueobject

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// FileName はファイル名を表す値オブジェクト
type FileName struct {
	value string
}

// NewFileName は文字列からFileNameを生成します
func NewFileName(name string) (FileName, error) {
	v, err := parseName(name)
	if err != nil {
		return FileName{}, err
	}
	return FileName{value: v}, nil
}

// ReconstructFileName はDBから読み出した名前を検証せずに復元します
func ReconstructFileName(name string) FileName {
	return FileName{value: name}
}

// Value は値を返します
func (fn FileName) Value() string {
	return fn.value
}

// String は文字列を返します（Stringerインターフェース）
func (fn FileName) String() string {
	return fn.value
}

// Equals は等価性を判定します
func (fn FileName) Equals(other FileName) bool {
	return fn.value == other.value
}

// Extension は拡張子を返します（ドット付き）。".env" のような先頭ドットの名前は拡張子なしとして扱います
func (fn FileName) Extension() string {
	ext := filepath.Ext(fn.value)
	if ext == fn.value {
		return ""
	}
	return ext
}

// BaseName は拡張子を除いたファイル名を返します
func (fn FileName) BaseName() string {
	return strings.TrimSuffix(fn.value, fn.Extension())
}

// WithSuffix は "report (2).pdf" のように拡張子の前へ連番を挿入した名前を返します。
// 上限文字数を超える場合はベース名を末尾から切り詰めます。
func (fn FileName) WithSuffix(n int) FileName {
	base, ext := fn.BaseName(), fn.Extension()
	marker := fmt.Sprintf(" (%d)", n)

	budget := NameMaxRunes - utf8.RuneCountInString(marker) - utf8.RuneCountInString(ext)
	if budget < 1 {
		// 拡張子だけで上限に近い場合は拡張子ごとベース名として扱います
		base, ext = fn.value, ""
		budget = NameMaxRunes - utf8.RuneCountInString(marker)
	}
	if runes := []rune(base); len(runes) > budget {
		base = strings.TrimRight(string(runes[:budget]), " ")
	}
	return FileName{value: base + marker + ext}
}
