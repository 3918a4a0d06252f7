package records

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"werkzeug_dashboard/models"
)

// Collection 单个后端 app 的 CRUD
type Collection[F any] struct {
	c    *Client
	name string
	id   string
}

func newCollection[F any](c *Client, name, id string) *Collection[F] {
	return &Collection[F]{c: c, name: name, id: id}
}

func (col *Collection[F]) Name() string { return col.name }
func (col *Collection[F]) ID() string   { return col.id }

func (col *Collection[F]) recordsPath() string {
	return "/apps/" + col.id + "/records"
}

// fieldsBody 后端写接口要求 {"fields": {...}}
type fieldsBody struct {
	Fields any `json:"fields"`
}

// List 后端返回 {id: record}，展开成按 ID 排序的切片
func (col *Collection[F]) List(ctx context.Context) ([]models.Record[F], error) {
	data, err := col.c.do(ctx, col.name, http.MethodGet, col.recordsPath(), nil)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte("[]")) {
		return []models.Record[F]{}, nil
	}

	var byID map[string]models.Record[F]
	if err := json.Unmarshal(data, &byID); err != nil {
		return nil, fmt.Errorf("decode %s: %w", col.name, err)
	}
	out := make([]models.Record[F], 0, len(byID))
	for id, rec := range byID {
		rec.ID = id
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (col *Collection[F]) Get(ctx context.Context, id string) (*models.Record[F], error) {
	data, err := col.c.do(ctx, col.name, http.MethodGet, col.recordsPath()+"/"+id, nil)
	if err != nil {
		return nil, err
	}
	var rec models.Record[F]
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", col.name, id, err)
	}
	if rec.ID == "" {
		rec.ID = id
	}
	return &rec, nil
}

// Create 返回后端确认原文
func (col *Collection[F]) Create(ctx context.Context, fields F) (json.RawMessage, error) {
	data, err := col.c.do(ctx, col.name, http.MethodPost, col.recordsPath(), fieldsBody{Fields: fields})
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// Update partial 可以是带 omitempty 的字段结构体，也可以是 map
func (col *Collection[F]) Update(ctx context.Context, id string, partial any) (json.RawMessage, error) {
	data, err := col.c.do(ctx, col.name, http.MethodPatch, col.recordsPath()+"/"+id, fieldsBody{Fields: partial})
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

func (col *Collection[F]) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := col.c.do(ctx, col.name, http.MethodDelete, col.recordsPath()+"/"+id, nil); err != nil {
		return false, err
	}
	return true, nil
}
