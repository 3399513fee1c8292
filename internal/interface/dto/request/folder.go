package request

// CreateFolderRequest はフォルダ作成リクエストです
type CreateFolderRequest struct {
	Name     string  `json:"name" validate:"required,foldername"`
	ParentID *string `json:"parentId" validate:"omitempty,uuid"`
	Attribution
}

// RenameFolderRequest はフォルダ名変更リクエストです
type RenameFolderRequest struct {
	Name string `json:"name" validate:"required,foldername"`
}

// MoveFolderRequest はフォルダ移動リクエストです。newParentIdがnullならルートへ移動します
type MoveFolderRequest struct {
	NewParentID *string `json:"newParentId" validate:"omitempty,uuid"`
}

// Attribution はアップロードリンク経由の作成で付与される由来情報です
type Attribution struct {
	LinkID          *string `json:"linkId" validate:"omitempty,uuid"`
	UploaderEmail   *string `json:"uploaderEmail" validate:"omitempty,email,max=320"`
	UploaderName    *string `json:"uploaderName" validate:"omitempty,max=255"`
	UploaderMessage *string `json:"uploaderMessage" validate:"omitempty,max=2000"`
}
