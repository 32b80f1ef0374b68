package database

import (
	"time"

	"gorm.io/datatypes"
)

// Document 表示内容仓库中的一份文档，按 (collection, doc_id) 唯一寻址。
type Document struct {
	ID         uint           `gorm:"primaryKey"`
	Collection string         `gorm:"size:64;not null;uniqueIndex:idx_documents_collection_doc"`
	DocID      string         `gorm:"size:128;not null;uniqueIndex:idx_documents_collection_doc"`
	Fields     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt  time.Time      `gorm:"index"`
	UpdatedAt  time.Time
}
