package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"folio/internal/database"
)

// GormRepository 将文档保存在单张 documents 表中，字段以 JSONB 存储。
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository 构造 GormRepository。
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) GetDocument(ctx context.Context, collection, id string) (*Document, error) {
	var row database.Document
	err := r.db.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, id).
		First(&row).Error
	if err != nil {
		return nil, translateError(err, collection, id)
	}
	return toDocument(row)
}

func (r *GormRepository) ListDocuments(ctx context.Context, collection string) ([]Document, error) {
	var rows []database.Document
	if err := r.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("created_at ASC").
		Order("doc_id ASC").
		Find(&rows).Error; err != nil {
		return nil, translateError(err, collection, "")
	}

	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		doc, err := toDocument(row)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, nil
}

// UpdateDocument 将 fields 浅合并到已有文档中。
func (r *GormRepository) UpdateDocument(ctx context.Context, collection, id string, fields map[string]any) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row database.Document
		if err := tx.Where("collection = ? AND doc_id = ?", collection, id).First(&row).Error; err != nil {
			return err
		}

		current, err := decodeFields(row.Fields)
		if err != nil {
			return err
		}
		encoded, err := encodeFields(mergeFields(current, fields))
		if err != nil {
			return err
		}
		return tx.Model(&row).Update("fields", encoded).Error
	})
	if err != nil {
		return translateError(err, collection, id)
	}
	return nil
}

// SetDocument 以整体替换的方式写入文档，不存在时创建。
func (r *GormRepository) SetDocument(ctx context.Context, collection, id string, fields map[string]any) error {
	encoded, err := encodeFields(fields)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row database.Document
		err := tx.Where("collection = ? AND doc_id = ?", collection, id).First(&row).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&database.Document{Collection: collection, DocID: id, Fields: encoded}).Error
		case err != nil:
			return err
		default:
			return tx.Model(&row).Update("fields", encoded).Error
		}
	})
	if err != nil {
		return translateError(err, collection, id)
	}
	return nil
}

func (r *GormRepository) CreateDocument(ctx context.Context, collection string, fields map[string]any) (string, error) {
	encoded, err := encodeFields(fields)
	if err != nil {
		return "", err
	}

	row := database.Document{
		Collection: collection,
		DocID:      uuid.NewString(),
		Fields:     encoded,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", translateError(err, collection, row.DocID)
	}
	return row.DocID, nil
}

func (r *GormRepository) DeleteDocument(ctx context.Context, collection, id string) error {
	result := r.db.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, id).
		Delete(&database.Document{})
	if result.Error != nil {
		return translateError(result.Error, collection, id)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	return nil
}

func toDocument(row database.Document) (*Document, error) {
	fields, err := decodeFields(row.Fields)
	if err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", row.Collection, row.DocID, err)
	}
	return &Document{
		Collection: row.Collection,
		ID:         row.DocID,
		Fields:     fields,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}, nil
}

func decodeFields(raw datatypes.JSON) (map[string]any, error) {
	fields := map[string]any{}
	if len(raw) == 0 || strings.TrimSpace(string(raw)) == "null" {
		return fields, nil
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func encodeFields(fields map[string]any) (datatypes.JSON, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode fields: %w", err)
	}
	return datatypes.JSON(data), nil
}

// translateError 将 gorm 错误映射为仓库错误：记录不存在 → ErrNotFound，其余视为后端不可用。
func translateError(err error, collection, id string) error {
	if err == nil {
		return nil
	}
	target := collection
	if id != "" {
		target = collection + "/" + id
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", target, ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %v", target, ErrUnavailable, err)
}
