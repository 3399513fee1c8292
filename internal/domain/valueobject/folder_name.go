package valueobject

// FolderName はフォルダ名を表す値オブジェクト
type FolderName struct {
	value string
}

// NewFolderName は文字列からFolderNameを生成します
func NewFolderName(name string) (FolderName, error) {
	v, err := parseName(name)
	if err != nil {
		return FolderName{}, err
	}
	return FolderName{value: v}, nil
}

// ReconstructFolderName はDBから読み出した名前を検証せずに復元します
func ReconstructFolderName(name string) FolderName {
	return FolderName{value: name}
}

// Value は値を返します
func (fn FolderName) Value() string {
	return fn.value
}

// String は文字列を返します（Stringerインターフェース）
func (fn FolderName) String() string {
	return fn.value
}

// Equals は等価性を判定します
func (fn FolderName) Equals(other FolderName) bool {
	return fn.value == other.value
}
